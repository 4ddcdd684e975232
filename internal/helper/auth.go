package helper

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	PurposeVerifyEmail   = "verify_email"
	PurposeResetPassword = "reset_password"

	VerifyTokenTTL = 24 * time.Hour
	ResetTokenTTL  = 30 * time.Minute
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Auth struct {
	Secret string
}

func SetupAuth(s string) Auth {
	return Auth{Secret: s}
}

func (a Auth) HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(b), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}

// MintToken signs a short-lived single-purpose token for the account.
// The fp claim binds the token to the account's current credential and
// verification state, so redeeming a verify token flips the fingerprint
// and kills any outstanding copy of it. Same for password resets.
func (a Auth) MintToken(user *domain.User, purpose string, ttl time.Duration) (string, error) {
	if user == nil || user.ID == 0 {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     strconv.FormatUint(uint64(user.ID), 10),
		"purpose": purpose,
		"fp":      stateFingerprint(user),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}
	return tokenStr, nil
}

// CheckToken validates a minted token against the account it claims to
// belong to. Every failure mode collapses into ErrInvalidToken.
func (a Auth) CheckToken(tokenStr string, user *domain.User, purpose string) error {
	if user == nil || tokenStr == "" {
		return ErrInvalidToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub != strconv.FormatUint(uint64(user.ID), 10) {
		return ErrInvalidToken
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return ErrInvalidToken
	}
	if fp, _ := claims["fp"].(string); fp != stateFingerprint(user) {
		return ErrInvalidToken
	}
	return nil
}

func stateFingerprint(user *domain.User) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%t", user.PasswordHash, user.IsVerified)))
	return hex.EncodeToString(sum[:16])
}

// EncodeUID renders a user ID as the opaque path segment used in
// verification links.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID is the inverse of EncodeUID. Malformed input of any kind
// yields the same failure.
func DecodeUID(s string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// RoleAllowed is the capability check behind every role-gated route:
// an exact membership test on the account's declared role.
func RoleAllowed(role string, allowed ...string) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}
