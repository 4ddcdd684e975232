package notifier

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/LifeDrop/donor_service/internal/dto"
	"github.com/LifeDrop/donor_service/internal/repository"
)

// Handler consumes request events and fans each one out to the donors
// that can serve it.
type Handler struct {
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
}

func NewHandler(userRepo repository.UserRepository, notifRepo repository.NotificationRepository) *Handler {
	return &Handler{userRepo: userRepo, notifRepo: notifRepo}
}

func (h *Handler) HandleMessage(key, message string) error {
	if key != dto.EventRequestCreated {
		log.Printf("[NOTIFY] skipping unknown event key=%s", key)
		return nil
	}

	var ev dto.RequestCreatedEvent
	if err := json.Unmarshal([]byte(message), &ev); err != nil {
		return fmt.Errorf("decode request event: %w", err)
	}

	donors, err := h.userRepo.FindAvailableDonors(ev.BloodType, ev.SeekerID)
	if err != nil {
		return fmt.Errorf("find donors for request %d: %w", ev.RequestID, err)
	}
	if len(donors) == 0 {
		log.Printf("[NOTIFY] request=%d blood_type=%s has no matching donors", ev.RequestID, ev.BloodType)
		return nil
	}

	meta, err := json.Marshal(map[string]any{
		"request_id": ev.RequestID,
		"blood_type": ev.BloodType,
		"units":      ev.Units,
		"urgency":    ev.Urgency,
	})
	if err != nil {
		return fmt.Errorf("encode notification metadata: %w", err)
	}

	msg := requestMessage(ev)
	created := 0
	for _, donor := range donors {
		n := &domain.Notification{
			UserID:     donor.ID,
			Type:       domain.NotificationRequest,
			Message:    msg,
			RelatedURL: fmt.Sprintf("/requests/%d", ev.RequestID),
			Metadata:   meta,
		}
		if err := h.notifRepo.Create(n); err != nil {
			// keep going, the remaining donors still get notified
			log.Printf("[NOTIFY] request=%d donor=%d create failed: %v", ev.RequestID, donor.ID, err)
			continue
		}
		created++
	}

	log.Printf("[NOTIFY] request=%d notified %d/%d donors", ev.RequestID, created, len(donors))
	return nil
}

func requestMessage(ev dto.RequestCreatedEvent) string {
	where := ev.City
	if where == "" {
		where = "your area"
	}
	return fmt.Sprintf("Urgent: %s blood needed (%d unit(s), %s priority) in %s.",
		ev.BloodType, ev.Units, ev.Urgency, where)
}
