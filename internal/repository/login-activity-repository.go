package repository

import (
	"errors"
	"log"

	"github.com/LifeDrop/donor_service/internal/domain"
	"gorm.io/gorm"
)

// LoginActivityRepository is append-and-read only; audit rows are never
// updated or deleted by the application.
type LoginActivityRepository interface {
	Append(activity *domain.LoginActivity) error
	ListByUser(userID uint, limit int) ([]domain.LoginActivity, error)
	ListRecent(limit int) ([]domain.LoginActivity, error)
}

type loginActivityRepository struct {
	db *gorm.DB
}

func NewLoginActivityRepository(db *gorm.DB) LoginActivityRepository {
	return &loginActivityRepository{db: db}
}

func (r *loginActivityRepository) Append(activity *domain.LoginActivity) error {
	if activity == nil {
		return errors.New("nil activity")
	}
	if err := r.db.Create(activity).Error; err != nil {
		log.Printf("append login activity error: %v", err)
		return err
	}
	return nil
}

func (r *loginActivityRepository) ListByUser(userID uint, limit int) ([]domain.LoginActivity, error) {
	var rows []domain.LoginActivity
	err := r.db.
		Where("user_id = ?", userID).
		Order("login_time DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		log.Printf("list login activity error: %v", err)
		return nil, err
	}
	return rows, nil
}

func (r *loginActivityRepository) ListRecent(limit int) ([]domain.LoginActivity, error) {
	var rows []domain.LoginActivity
	err := r.db.Order("login_time DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		log.Printf("list recent login activity error: %v", err)
		return nil, err
	}
	return rows, nil
}
