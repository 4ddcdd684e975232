package repository

import (
	"errors"
	"log"

	"github.com/LifeDrop/donor_service/internal/domain"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *domain.Notification) error
	ListByUser(userID uint) ([]domain.Notification, error)
	// FindByIdAndUser scopes the lookup by owner so a foreign id behaves
	// exactly like a missing one.
	FindByIdAndUser(id, userID uint) (*domain.Notification, error)
	Save(n *domain.Notification) error
	CountUnread(userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *domain.Notification) error {
	if n == nil {
		return errors.New("nil notification")
	}
	if err := r.db.Create(n).Error; err != nil {
		log.Printf("create notification error: %v", err)
		return err
	}
	return nil
}

func (r *notificationRepository) ListByUser(userID uint) ([]domain.Notification, error) {
	var rows []domain.Notification
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		log.Printf("list notifications error: %v", err)
		return nil, err
	}
	return rows, nil
}

func (r *notificationRepository) FindByIdAndUser(id, userID uint) (*domain.Notification, error) {
	n := &domain.Notification{}
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("find notification error: %v", err)
		return nil, err
	}
	return n, nil
}

func (r *notificationRepository) Save(n *domain.Notification) error {
	if n == nil {
		return errors.New("nil notification")
	}
	if err := r.db.Save(n).Error; err != nil {
		log.Printf("save notification error: %v", err)
		return err
	}
	return nil
}

func (r *notificationRepository) CountUnread(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	if err != nil {
		log.Printf("count unread notifications error: %v", err)
		return 0, err
	}
	return n, nil
}
