package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/LifeDrop/donor_service/internal/dto"
	"github.com/LifeDrop/donor_service/internal/helper/utils"
	"github.com/LifeDrop/donor_service/internal/interfaces"
	"github.com/LifeDrop/donor_service/internal/repository"
)

type RequestService interface {
	Create(seeker *domain.User, input dto.CreateBloodRequest) (*domain.BloodRequest, error)
	ListOwn(userID uint) ([]domain.BloodRequest, error)
	ListOpen() ([]domain.BloodRequest, error)
}

type requestService struct {
	repo     repository.BloodRequestRepository
	producer interfaces.ProducerHandler
}

func NewRequestService(repo repository.BloodRequestRepository, producer interfaces.ProducerHandler) RequestService {
	return &requestService{repo: repo, producer: producer}
}

// Create persists a seeker's blood request and fans it out on the
// request topic; the notifier worker turns the event into donor
// notifications. The request stands even if the fan-out fails.
func (s *requestService) Create(seeker *domain.User, input dto.CreateBloodRequest) (*domain.BloodRequest, error) {
	if seeker == nil || seeker.ID == 0 {
		return nil, errors.New("invalid requester")
	}
	if !utils.ValidBloodType(input.BloodType) {
		return nil, &ValidationError{Field: "blood_type", Message: "Invalid blood type"}
	}
	urgency := strings.TrimSpace(strings.ToLower(input.Urgency))
	if urgency == "" {
		urgency = domain.UrgencyMedium
	}
	if !utils.ValidUrgency(urgency) {
		return nil, &ValidationError{Field: "urgency", Message: "Invalid urgency"}
	}
	units := input.UnitsRequired
	if units == 0 {
		units = 1
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return nil, &ValidationError{Field: "latitude", Message: "Latitude and longitude must be supplied together"}
	}

	req := &domain.BloodRequest{
		UserID:         seeker.ID,
		BloodType:      input.BloodType,
		UnitsRequired:  units,
		Urgency:        urgency,
		AdditionalInfo: strings.TrimSpace(input.AdditionalInfo),
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
	}
	if err := s.repo.Create(req); err != nil {
		return nil, errors.New("failed to create blood request")
	}

	event := dto.RequestCreatedEvent{
		RequestID: req.ID,
		SeekerID:  seeker.ID,
		BloodType: req.BloodType,
		Units:     req.UnitsRequired,
		Urgency:   req.Urgency,
		City:      seeker.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if payload, err := json.Marshal(event); err == nil {
		if err := s.producer.PublishMessage([]byte(dto.EventRequestCreated), payload); err != nil {
			log.Printf("publish request.created error: %v", err)
		}
	}

	return req, nil
}

func (s *requestService) ListOwn(userID uint) ([]domain.BloodRequest, error) {
	return s.repo.ListByUser(userID)
}

func (s *requestService) ListOpen() ([]domain.BloodRequest, error) {
	return s.repo.ListOpen(100)
}
