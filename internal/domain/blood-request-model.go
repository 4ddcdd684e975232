package domain

import "time"

const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

type BloodRequest struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	BloodType      string `gorm:"type:varchar(3);not null" json:"blood_type"`
	UnitsRequired  uint   `gorm:"default:1" json:"units_required"`
	Urgency        string `gorm:"type:varchar(10);default:medium" json:"urgency"`
	AdditionalInfo string `gorm:"type:text" json:"additional_info"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// Fulfilled is flipped by matching logic outside this service; no
	// handler here mutates it.
	Fulfilled bool      `gorm:"default:false" json:"fulfilled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
