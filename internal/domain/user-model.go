package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleDonor  = "donor"
	RoleSeeker = "seeker"
	RoleAdmin  = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"type:varchar(10);not null" json:"role"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `gorm:"type:varchar(17)" json:"phone"`
	BloodType string `gorm:"type:varchar(3)" json:"blood_type"`

	IsAvailable  bool       `gorm:"default:true" json:"is_available"`
	LastDonation *time.Time `json:"last_donation,omitempty"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`

	ProfilePicture string `json:"profile_picture"`
	Bio            string `gorm:"type:text" json:"bio"`
	Address        string `json:"address"`
	City           string `gorm:"type:varchar(50)" json:"city"`
	Province       string `gorm:"type:varchar(50)" json:"province"`
	Country        string `gorm:"type:varchar(100)" json:"country"`

	// Coordinates are stored as an atomic pair: both set or both null.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	gorm.Model
}

// CanLogin reports whether the account is usable for authentication.
func (u *User) CanLogin() bool {
	return u.IsVerified && u.IsActive
}
