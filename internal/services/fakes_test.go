package services

import (
	"context"
	"errors"
	"sort"

	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/LifeDrop/donor_service/internal/repository"
)

// In-memory repository doubles for service tests. They honor the same
// contracts as the gorm implementations, ErrNotFound included.

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, errors.New("duplicate key value violates unique constraint")
		}
	}
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return user, nil
}

func (r *fakeUserRepo) SaveUser(user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errors.New("user does not exist")
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindUserByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindUserByUsername(username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindUserById(userID uint) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindAvailableDonors(bloodType string, excludeUserID uint) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == domain.RoleDonor && u.BloodType == bloodType &&
			u.IsAvailable && u.IsVerified && u.IsActive && u.ID != excludeUserID {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) CountByRole(role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeActivityRepo struct {
	rows []domain.LoginActivity
}

func (r *fakeActivityRepo) Append(activity *domain.LoginActivity) error {
	r.rows = append(r.rows, *activity)
	return nil
}

func (r *fakeActivityRepo) ListByUser(userID uint, limit int) ([]domain.LoginActivity, error) {
	var out []domain.LoginActivity
	for _, a := range r.rows {
		if a.UserID != nil && *a.UserID == userID {
			out = append(out, a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeActivityRepo) ListRecent(limit int) ([]domain.LoginActivity, error) {
	out := append([]domain.LoginActivity(nil), r.rows...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeRequestRepo struct {
	rows   []domain.BloodRequest
	nextID uint
	fail   bool
}

func (r *fakeRequestRepo) Create(req *domain.BloodRequest) error {
	if r.fail {
		return errors.New("insert failed")
	}
	r.nextID++
	req.ID = r.nextID
	r.rows = append(r.rows, *req)
	return nil
}

func (r *fakeRequestRepo) ListByUser(userID uint) ([]domain.BloodRequest, error) {
	var out []domain.BloodRequest
	for _, req := range r.rows {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListOpen(limit int) ([]domain.BloodRequest, error) {
	var out []domain.BloodRequest
	for _, req := range r.rows {
		if !req.Fulfilled {
			out = append(out, req)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeNotificationRepo struct {
	rows   map[uint]*domain.Notification
	nextID uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{rows: map[uint]*domain.Notification{}}
}

func (r *fakeNotificationRepo) Create(n *domain.Notification) error {
	r.nextID++
	n.ID = r.nextID
	cp := *n
	r.rows[n.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) ListByUser(userID uint) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.rows {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeNotificationRepo) FindByIdAndUser(id, userID uint) (*domain.Notification, error) {
	n, ok := r.rows[id]
	if !ok || n.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNotificationRepo) Save(n *domain.Notification) error {
	if _, ok := r.rows[n.ID]; !ok {
		return errors.New("notification does not exist")
	}
	cp := *n
	r.rows[n.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) CountUnread(userID uint) (int64, error) {
	var c int64
	for _, n := range r.rows {
		if n.UserID == userID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

// recordProducer captures published events instead of touching Kafka.
type recordProducer struct {
	keys     []string
	payloads [][]byte
	err      error
}

func (p *recordProducer) PublishMessage(key, value []byte) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, string(key))
	p.payloads = append(p.payloads, value)
	return nil
}

type fakeUploader struct {
	url string
	err error
}

func (u *fakeUploader) UploadBytes(_ context.Context, folder, filename string, _ []byte) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if u.url != "" {
		return u.url, nil
	}
	return "https://cdn.example.com/" + folder + "/" + filename, nil
}
