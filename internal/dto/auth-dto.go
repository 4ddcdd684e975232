package dto

type RegisterRequest struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password1 string   `json:"password1"`
	Password2 string   `json:"password2"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Phone     string   `json:"phone"`
	BloodType string   `json:"blood_type"`
	UserType  string   `json:"user_type"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Province  string   `json:"province"`
	City      string   `json:"city"`
}

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type SetPasswordRequest struct {
	UID         string `json:"uid"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
