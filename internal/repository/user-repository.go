package repository

import (
	"errors"
	"log"

	"github.com/LifeDrop/donor_service/internal/domain"
	"gorm.io/gorm"
)

// ErrNotFound is returned by every repository when a lookup matches no
// row, so callers never depend on gorm directly.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	SaveUser(user *domain.User) error
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByUsername(username string) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)
	FindAvailableDonors(bloodType string, excludeUserID uint) ([]domain.User, error)
	CountByRole(role string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}
	if err := r.db.Create(user).Error; err != nil {
		log.Printf("create user error: %v", err)
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	if err := r.db.Save(user).Error; err != nil {
		log.Printf("save user error: %v", err)
		return err
	}
	return nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("find user by email error: %v", err)
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserByUsername(username string) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("find user by username error: %v", err)
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}
	if err := r.db.First(user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("find user by id error: %v", err)
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindAvailableDonors(bloodType string, excludeUserID uint) ([]domain.User, error) {
	var donors []domain.User
	err := r.db.
		Where("role = ? AND blood_type = ? AND is_available = ? AND is_verified = ? AND is_active = ?",
			domain.RoleDonor, bloodType, true, true, true).
		Where("id <> ?", excludeUserID).
		Find(&donors).Error
	if err != nil {
		log.Printf("find available donors error: %v", err)
		return nil, err
	}
	return donors, nil
}

func (r *userRepository) CountByRole(role string) (int64, error) {
	var n int64
	if err := r.db.Model(&domain.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
