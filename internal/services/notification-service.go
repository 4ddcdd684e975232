package services

import (
	"errors"

	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/LifeDrop/donor_service/internal/repository"
)

// ErrNotificationNotFound is returned both for a missing id and for a
// notification owned by someone else, so the endpoint never discloses
// which of the two it was.
var ErrNotificationNotFound = errors.New("Notification not found")

type NotificationService interface {
	List(userID uint) ([]domain.Notification, error)
	MarkRead(id, userID uint) error
	UnreadCount(userID uint) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(userID uint) ([]domain.Notification, error) {
	return s.repo.ListByUser(userID)
}

func (s *notificationService) MarkRead(id, userID uint) error {
	n, err := s.repo.FindByIdAndUser(id, userID)
	if err != nil {
		return ErrNotificationNotFound
	}
	if n.IsRead {
		return nil
	}
	n.IsRead = true
	return s.repo.Save(n)
}

func (s *notificationService) UnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}
