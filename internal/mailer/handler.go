package mailer

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/LifeDrop/donor_service/internal/dto"
)

// Handler consumes mail events and sends the matching email.
type Handler struct {
	mail *MailService
}

func NewHandler(mail *MailService) *Handler {
	return &Handler{mail: mail}
}

func (h *Handler) HandleMessage(key, message string) error {
	switch key {
	case dto.EventVerifyEmail:
		var ev dto.VerifyEmailEvent
		if err := json.Unmarshal([]byte(message), &ev); err != nil {
			return fmt.Errorf("decode verify event: %w", err)
		}
		return h.mail.SendVerifyEmail(ev.Email, ev.VerifyURL)

	case dto.EventResetPassword:
		var ev dto.ResetPasswordEvent
		if err := json.Unmarshal([]byte(message), &ev); err != nil {
			return fmt.Errorf("decode reset event: %w", err)
		}
		return h.mail.SendResetEmail(ev.Email, ev.ResetURL)

	default:
		log.Printf("[MAIL] skipping unknown event key=%s", key)
		return nil
	}
}
