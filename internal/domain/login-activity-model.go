package domain

import "time"

// LoginActivity is an append-only audit record of a login attempt.
// UserID is null when the credentials resolved to no account.
type LoginActivity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	LoginTime time.Time `gorm:"autoCreateTime" json:"login_time"`
	IPAddress string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent string    `gorm:"type:varchar(255)" json:"user_agent"`
	Success   bool      `gorm:"default:false" json:"success"`
}
