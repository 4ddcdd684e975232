package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/LifeDrop/donor_service/internal/dto"
	"github.com/LifeDrop/donor_service/internal/helper"
	"github.com/LifeDrop/donor_service/internal/helper/utils"
	"github.com/LifeDrop/donor_service/internal/interfaces"
	"github.com/LifeDrop/donor_service/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("This email is already registered")
	ErrUsernameTaken      = errors.New("This username is already taken")
	ErrBlankCredentials   = errors.New("Both email and password are required")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrNotVerified        = errors.New("Please verify your email before logging in")
	ErrAlreadyVerified    = errors.New("Account is already verified")
	ErrInvalidLink        = errors.New("Invalid or expired verification link")
	ErrUserNotFound       = errors.New("No account found with this email")
)

// ValidationError carries the field the registration form should mark.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type UserService interface {
	// Registration & verification
	Register(input dto.RegisterRequest) (*domain.User, error)
	VerifyEmail(uidB64, token string) (*domain.User, error)
	ResendVerification(email string) error

	// Authentication
	Login(input dto.UserLogin, ip, userAgent string) (*domain.User, error)

	// Account
	Deactivate(userID uint) error
	LoginHistory(userID uint) ([]domain.LoginActivity, error)

	// Profile
	GetProfile(userID uint) (*domain.User, error)
	UpdateProfile(userID uint, input dto.UpdateUserProfile) (*domain.User, error)
	SetAvailability(userID uint, available bool) (*domain.User, error)
	UploadProfilePicture(ctx context.Context, userID uint, filename string, raw []byte) (string, error)

	// Passwords
	ChangePassword(userID uint, oldPassword, newPassword string) error
	ForgotPassword(email string) error
	SetPassword(input dto.SetPasswordRequest) error
}

type userService struct {
	repo         repository.UserRepository
	activityRepo repository.LoginActivityRepository
	producer     interfaces.ProducerHandler
	uploader     interfaces.Uploader
	auth         helper.Auth

	verifyBaseURL string
	resetBaseURL  string
}

func NewUserService(
	repo repository.UserRepository,
	activityRepo repository.LoginActivityRepository,
	producer interfaces.ProducerHandler,
	uploader interfaces.Uploader,
	auth helper.Auth,
	verifyBaseURL string,
	resetBaseURL string,
) UserService {
	return &userService{
		repo:          repo,
		activityRepo:  activityRepo,
		producer:      producer,
		uploader:      uploader,
		auth:          auth,
		verifyBaseURL: verifyBaseURL,
		resetBaseURL:  resetBaseURL,
	}
}

// Register validates the submitted form, persists the account in
// unverified state and dispatches a verification mail event. The mail
// event is part of the contract: a publish failure fails the request.
func (u *userService) Register(input dto.RegisterRequest) (*domain.User, error) {
	email := utils.NormalizeEmail(input.Email)
	username := strings.TrimSpace(input.Username)
	phone := strings.TrimSpace(input.Phone)
	role := strings.TrimSpace(strings.ToLower(input.UserType))

	if username == "" {
		return nil, &ValidationError{Field: "username", Message: "Username is required"}
	}
	if email == "" {
		return nil, &ValidationError{Field: "email", Message: "Email is required"}
	}
	if input.Password1 == "" || input.Password2 == "" {
		return nil, &ValidationError{Field: "password1", Message: "Both password entries are required"}
	}
	if input.Password1 != input.Password2 {
		return nil, &ValidationError{Field: "password2", Message: "The two password fields didn't match"}
	}
	if len(input.Password1) < 8 {
		return nil, &ValidationError{Field: "password1", Message: "Password must be at least 8 characters"}
	}
	if !utils.ValidPhone(phone) {
		return nil, &ValidationError{Field: "phone", Message: "Phone number must be entered in the format: '+999999999'"}
	}
	if !utils.ValidBloodType(input.BloodType) {
		return nil, &ValidationError{Field: "blood_type", Message: "Invalid blood type"}
	}
	if role != domain.RoleDonor && role != domain.RoleSeeker {
		return nil, &ValidationError{Field: "user_type", Message: "Invalid account type"}
	}
	if input.Latitude == nil || input.Longitude == nil {
		return nil, &ValidationError{Field: "latitude", Message: "Location coordinates are required"}
	}
	if strings.TrimSpace(input.Province) == "" || strings.TrimSpace(input.City) == "" {
		return nil, &ValidationError{Field: "province", Message: "Province and city are required"}
	}

	if existing, err := u.repo.FindUserByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	if existing, err := u.repo.FindUserByUsername(username); err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := u.auth.HashPassword(input.Password1)
	if err != nil {
		return nil, err
	}

	newUser := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        phone,
		BloodType:    input.BloodType,
		IsAvailable:  role == domain.RoleDonor,
		IsVerified:   false,
		IsActive:     true,
		Province:     strings.TrimSpace(input.Province),
		City:         strings.TrimSpace(input.City),
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, errors.New("failed to create user")
	}

	if err := u.sendVerificationMail(usr); err != nil {
		return nil, err
	}
	return usr, nil
}

func (u *userService) sendVerificationMail(usr *domain.User) error {
	token, err := u.auth.MintToken(usr, helper.PurposeVerifyEmail, helper.VerifyTokenTTL)
	if err != nil {
		return err
	}

	event := dto.VerifyEmailEvent{
		UserID:    usr.ID,
		Email:     usr.Email,
		VerifyURL: fmt.Sprintf("%s/%s/%s", u.verifyBaseURL, helper.EncodeUID(usr.ID), token),
		ExpiresAt: time.Now().Add(helper.VerifyTokenTTL).Format(time.RFC3339),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := u.producer.PublishMessage([]byte(dto.EventVerifyEmail), payload); err != nil {
		log.Printf("publish verification mail error: %v", err)
		return errors.New("failed to send verification email")
	}
	return nil
}

// VerifyEmail redeems a verification link. Malformed identifiers,
// unknown accounts and bad tokens all collapse into the same failure.
// Redemption is single-use: flipping IsVerified changes the token
// fingerprint, so a second redemption fails.
func (u *userService) VerifyEmail(uidB64, token string) (*domain.User, error) {
	id, err := helper.DecodeUID(uidB64)
	if err != nil {
		return nil, ErrInvalidLink
	}

	usr, err := u.repo.FindUserById(id)
	if err != nil || usr == nil {
		return nil, ErrInvalidLink
	}

	if err := u.auth.CheckToken(token, usr, helper.PurposeVerifyEmail); err != nil {
		return nil, ErrInvalidLink
	}

	usr.IsVerified = true
	if err := u.repo.SaveUser(usr); err != nil {
		return nil, errors.New("failed to verify account")
	}
	return usr, nil
}

func (u *userService) ResendVerification(email string) error {
	usr, err := u.repo.FindUserByEmail(utils.NormalizeEmail(email))
	if err != nil || usr == nil {
		return ErrUserNotFound
	}
	if usr.IsVerified {
		return ErrAlreadyVerified
	}
	return u.sendVerificationMail(usr)
}

// Login resolves credentials and appends exactly one audit row per
// attempt with a non-blank email and password. Success is recorded true
// only when the credentials resolved and the account is verified.
func (u *userService) Login(input dto.UserLogin, ip, userAgent string) (*domain.User, error) {
	email := utils.NormalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)

	// Blank input is rejected inline before any audit entry.
	if email == "" || password == "" {
		return nil, ErrBlankCredentials
	}

	var usr *domain.User
	if found, err := u.repo.FindUserByEmail(email); err == nil {
		usr = found
	}

	resolved := usr != nil
	if resolved {
		if err := u.auth.VerifyPassword(password, usr.PasswordHash); err != nil {
			resolved = false
			usr = nil
		}
	}

	activity := &domain.LoginActivity{
		IPAddress: ip,
		UserAgent: userAgent,
		Success:   resolved && usr.IsVerified,
	}
	if resolved {
		id := usr.ID
		activity.UserID = &id
	}
	if err := u.activityRepo.Append(activity); err != nil {
		log.Printf("login audit append error: %v", err)
	}

	if !resolved {
		return nil, ErrInvalidCredentials
	}
	if !usr.IsVerified {
		return nil, ErrNotVerified
	}
	return usr, nil
}

func (u *userService) Deactivate(userID uint) error {
	usr, err := u.repo.FindUserById(userID)
	if err != nil || usr == nil {
		return ErrUserNotFound
	}
	// Soft delete only; the record and its audit trail stay.
	usr.IsActive = false
	return u.repo.SaveUser(usr)
}

func (u *userService) LoginHistory(userID uint) ([]domain.LoginActivity, error) {
	return u.activityRepo.ListByUser(userID, 100)
}

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	usr, err := u.repo.FindUserById(userID)
	if err != nil || usr == nil {
		return nil, ErrUserNotFound
	}
	return usr, nil
}

// UpdateProfile applies a partial update. The coordinate pair is an
// atomic value: both fields or neither, never one.
func (u *userService) UpdateProfile(userID uint, input dto.UpdateUserProfile) (*domain.User, error) {
	usr, err := u.repo.FindUserById(userID)
	if err != nil || usr == nil {
		return nil, ErrUserNotFound
	}

	if input.FirstName != nil {
		usr.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		usr.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		p := strings.TrimSpace(*input.Phone)
		if !utils.ValidPhone(p) {
			return nil, &ValidationError{Field: "phone", Message: "Phone number must be entered in the format: '+999999999'"}
		}
		usr.Phone = p
	}
	if input.BloodType != nil {
		if !utils.ValidBloodType(*input.BloodType) {
			return nil, &ValidationError{Field: "blood_type", Message: "Invalid blood type"}
		}
		usr.BloodType = *input.BloodType
	}
	if input.Bio != nil {
		usr.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.Address != nil {
		usr.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		usr.City = strings.TrimSpace(*input.City)
	}
	if input.Province != nil {
		usr.Province = strings.TrimSpace(*input.Province)
	}
	if input.Country != nil {
		usr.Country = strings.TrimSpace(*input.Country)
	}

	if (input.Latitude == nil) != (input.Longitude == nil) {
		return nil, &ValidationError{Field: "latitude", Message: "Latitude and longitude must be updated together"}
	}
	if input.Latitude != nil {
		usr.Latitude = input.Latitude
		usr.Longitude = input.Longitude
	}

	if err := u.repo.SaveUser(usr); err != nil {
		return nil, errors.New("failed to update profile")
	}
	return usr, nil
}

func (u *userService) SetAvailability(userID uint, available bool) (*domain.User, error) {
	usr, err := u.repo.FindUserById(userID)
	if err != nil || usr == nil {
		return nil, ErrUserNotFound
	}
	usr.IsAvailable = available
	if err := u.repo.SaveUser(usr); err != nil {
		return nil, errors.New("failed to update availability")
	}
	return usr, nil
}

func (u *userService) UploadProfilePicture(ctx context.Context, userID uint, filename string, raw []byte) (string, error) {
	usr, err := u.repo.FindUserById(userID)
	if err != nil || usr == nil {
		return "", ErrUserNotFound
	}

	url, err := u.uploader.UploadBytes(ctx, "lifedrop/profile_pics", filename, raw)
	if err != nil {
		log.Printf("profile picture upload error: %v", err)
		return "", errors.New("failed to upload profile picture")
	}

	usr.ProfilePicture = url
	if err := u.repo.SaveUser(usr); err != nil {
		return "", errors.New("failed to save profile picture")
	}
	return url, nil
}

func (u *userService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	usr, err := u.repo.FindUserById(userID)
	if err != nil || usr == nil {
		return ErrUserNotFound
	}
	if err := u.auth.VerifyPassword(oldPassword, usr.PasswordHash); err != nil {
		return errors.New("Current password is incorrect")
	}
	if len(newPassword) < 8 {
		return &ValidationError{Field: "new_password", Message: "Password must be at least 8 characters"}
	}
	hashed, err := u.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	usr.PasswordHash = hashed
	return u.repo.SaveUser(usr)
}

func (u *userService) ForgotPassword(email string) error {
	usr, err := u.repo.FindUserByEmail(utils.NormalizeEmail(email))
	if err != nil || usr == nil {
		return ErrUserNotFound
	}

	token, err := u.auth.MintToken(usr, helper.PurposeResetPassword, helper.ResetTokenTTL)
	if err != nil {
		return err
	}

	event := dto.ResetPasswordEvent{
		UserID:    usr.ID,
		Email:     usr.Email,
		ResetURL:  fmt.Sprintf("%s?uid=%s&token=%s", u.resetBaseURL, helper.EncodeUID(usr.ID), token),
		ExpiresAt: time.Now().Add(helper.ResetTokenTTL).Format(time.RFC3339),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := u.producer.PublishMessage([]byte(dto.EventResetPassword), payload); err != nil {
		log.Printf("publish reset mail error: %v", err)
		return errors.New("failed to send password reset email")
	}
	return nil
}

func (u *userService) SetPassword(input dto.SetPasswordRequest) error {
	if strings.TrimSpace(input.NewPassword) == "" || len(input.NewPassword) < 8 {
		return &ValidationError{Field: "new_password", Message: "Password must be at least 8 characters"}
	}

	id, err := helper.DecodeUID(input.UID)
	if err != nil {
		return helper.ErrInvalidToken
	}
	usr, err := u.repo.FindUserById(id)
	if err != nil || usr == nil {
		return helper.ErrInvalidToken
	}
	if err := u.auth.CheckToken(input.Token, usr, helper.PurposeResetPassword); err != nil {
		return helper.ErrInvalidToken
	}

	hashed, err := u.auth.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	// Changing the hash invalidates the redeemed token.
	usr.PasswordHash = hashed
	return u.repo.SaveUser(usr)
}
