package repository

import (
	"errors"
	"log"

	"github.com/LifeDrop/donor_service/internal/domain"
	"gorm.io/gorm"
)

type BloodRequestRepository interface {
	Create(req *domain.BloodRequest) error
	ListByUser(userID uint) ([]domain.BloodRequest, error)
	ListOpen(limit int) ([]domain.BloodRequest, error)
}

type bloodRequestRepository struct {
	db *gorm.DB
}

func NewBloodRequestRepository(db *gorm.DB) BloodRequestRepository {
	return &bloodRequestRepository{db: db}
}

func (r *bloodRequestRepository) Create(req *domain.BloodRequest) error {
	if req == nil {
		return errors.New("nil request")
	}
	if err := r.db.Create(req).Error; err != nil {
		log.Printf("create blood request error: %v", err)
		return err
	}
	return nil
}

func (r *bloodRequestRepository) ListByUser(userID uint) ([]domain.BloodRequest, error) {
	var rows []domain.BloodRequest
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		log.Printf("list blood requests error: %v", err)
		return nil, err
	}
	return rows, nil
}

func (r *bloodRequestRepository) ListOpen(limit int) ([]domain.BloodRequest, error) {
	var rows []domain.BloodRequest
	err := r.db.
		Where("fulfilled = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		log.Printf("list open blood requests error: %v", err)
		return nil, err
	}
	return rows, nil
}
