package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationRequest = "request"
	NotificationMatch   = "match"
	NotificationMessage = "message"
	NotificationSystem  = "system"
)

type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Type       string         `gorm:"type:varchar(10);not null" json:"type"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	RelatedURL string         `json:"related_url,omitempty"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`

	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
