package dto

import (
	"time"

	"github.com/LifeDrop/donor_service/internal/domain"
)

type UpdateUserProfile struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	BloodType *string `json:"blood_type,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Address   *string `json:"address,omitempty"`
	City      *string `json:"city,omitempty"`
	Province  *string `json:"province,omitempty"`
	Country   *string `json:"country,omitempty"`

	// Coordinates must come as a pair: both set or both absent.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type SetAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

type UserProfileResponse struct {
	ID             uint       `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Phone          string     `json:"phone"`
	BloodType      string     `json:"blood_type"`
	IsAvailable    bool       `json:"is_available"`
	LastDonation   *time.Time `json:"last_donation,omitempty"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	Address        string     `json:"address,omitempty"`
	City           string     `json:"city,omitempty"`
	Province       string     `json:"province,omitempty"`
	Country        string     `json:"country,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	CreatedAt      string     `json:"created_at"`
}

func ToUserProfileResponse(u *domain.User) UserProfileResponse {
	return UserProfileResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Role:           u.Role,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		BloodType:      u.BloodType,
		IsAvailable:    u.IsAvailable,
		LastDonation:   u.LastDonation,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Address:        u.Address,
		City:           u.City,
		Province:       u.Province,
		Country:        u.Country,
		Latitude:       u.Latitude,
		Longitude:      u.Longitude,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}
