package dto

// Event keys published to Kafka. The mailer worker consumes the mail
// topic, the notifier worker the request topic.
const (
	EventVerifyEmail    = "user.verify_email"
	EventResetPassword  = "user.reset_password"
	EventRequestCreated = "request.created"
)

type VerifyEmailEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	VerifyURL string `json:"verify_url"`
	ExpiresAt string `json:"expires_at"`
}

type ResetPasswordEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	ResetURL  string `json:"reset_url"`
	ExpiresAt string `json:"expires_at"`
}

type RequestCreatedEvent struct {
	RequestID uint     `json:"request_id"`
	SeekerID  uint     `json:"seeker_id"`
	BloodType string   `json:"blood_type"`
	Units     uint     `json:"units"`
	Urgency   string   `json:"urgency"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
