package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LifeDrop/donor_service/internal/api/rest/middleware"
	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/LifeDrop/donor_service/internal/dto"
	"github.com/LifeDrop/donor_service/internal/services"
	"github.com/LifeDrop/donor_service/internal/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserService scripts the outcomes the handler has to translate.
type stubUserService struct {
	loginUser   *domain.User
	loginErr    error
	registerErr error
	verifyUser  *domain.User
	verifyErr   error
	resendErr   error
}

func (s *stubUserService) Register(dto.RegisterRequest) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: 1}, nil
}

func (s *stubUserService) VerifyEmail(string, string) (*domain.User, error) {
	return s.verifyUser, s.verifyErr
}

func (s *stubUserService) ResendVerification(string) error { return s.resendErr }

func (s *stubUserService) Login(dto.UserLogin, string, string) (*domain.User, error) {
	return s.loginUser, s.loginErr
}

func (s *stubUserService) Deactivate(uint) error { return nil }

func (s *stubUserService) LoginHistory(uint) ([]domain.LoginActivity, error) { return nil, nil }

func (s *stubUserService) GetProfile(uint) (*domain.User, error) { return nil, nil }

func (s *stubUserService) UpdateProfile(uint, dto.UpdateUserProfile) (*domain.User, error) {
	return nil, nil
}

func (s *stubUserService) SetAvailability(uint, bool) (*domain.User, error) { return nil, nil }

func (s *stubUserService) UploadProfilePicture(context.Context, uint, string, []byte) (string, error) {
	return "", nil
}

func (s *stubUserService) ChangePassword(uint, string, string) error { return nil }

func (s *stubUserService) ForgotPassword(string) error { return nil }

func (s *stubUserService) SetPassword(dto.SetPasswordRequest) error { return nil }

func newAuthApp(t *testing.T, svc services.UserService) *fiber.App {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := session.NewStore(client, 30*time.Minute, time.Hour)
	h := NewAuthHandler(svc, store, time.Hour)

	app := fiber.New()
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/register", h.Register)
	return app
}

func postJSON(target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLoginActiveUserGetsSessionAndDashboard(t *testing.T) {
	svc := &stubUserService{loginUser: &domain.User{
		ID: 7, Role: domain.RoleDonor, IsVerified: true, IsActive: true,
	}}
	app := newAuthApp(t, svc)

	resp, err := app.Test(postJSON("/api/auth/login", dto.UserLogin{Email: "a@b.com", Password: "pw"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/dashboard/donor", body["redirect"])

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "login sets the session cookie")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginInactiveUserGetsDashboardWithoutSession(t *testing.T) {
	svc := &stubUserService{loginUser: &domain.User{
		ID: 7, Role: domain.RoleSeeker, IsVerified: true, IsActive: false,
	}}
	app := newAuthApp(t, svc)

	resp, err := app.Test(postJSON("/api/auth/login", dto.UserLogin{Email: "a@b.com", Password: "pw"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/dashboard/seeker", body["redirect"])
	assert.Nil(t, sessionCookie(resp), "no session for an inactive account")
}

func TestLoginErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"blank credentials", services.ErrBlankCredentials, fiber.StatusBadRequest},
		{"not verified", services.ErrNotVerified, fiber.StatusForbidden},
		{"invalid credentials", services.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"anything else", errors.New("db down"), fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newAuthApp(t, &stubUserService{loginErr: tc.err})

			resp, err := app.Test(postJSON("/api/auth/login", dto.UserLogin{Email: "a@b.com", Password: "pw"}))
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Nil(t, sessionCookie(resp))
		})
	}
}

func TestLoginNotVerifiedRedirectsToResend(t *testing.T) {
	app := newAuthApp(t, &stubUserService{loginErr: services.ErrNotVerified})

	resp, err := app.Test(postJSON("/api/auth/login", dto.UserLogin{Email: "a@b.com", Password: "pw"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "/resend-verification", decodeBody(t, resp)["redirect"])
}

func TestRegisterValidationFieldSurfaces(t *testing.T) {
	app := newAuthApp(t, &stubUserService{
		registerErr: &services.ValidationError{Field: "phone", Message: "Phone number must be entered in the format: '+999999999'"},
	})

	resp, err := app.Test(postJSON("/api/auth/register", dto.RegisterRequest{}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "phone", body["field"])
}

func TestRegisterDuplicateEmailMapsToEmailField(t *testing.T) {
	app := newAuthApp(t, &stubUserService{registerErr: services.ErrEmailTaken})

	resp, err := app.Test(postJSON("/api/auth/register", dto.RegisterRequest{}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "email", body["field"])
	assert.Equal(t, services.ErrEmailTaken.Error(), body["error"])
}

func TestRegisterSuccess(t *testing.T) {
	app := newAuthApp(t, &stubUserService{})

	resp, err := app.Test(postJSON("/api/auth/register", dto.RegisterRequest{}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/registration-success", decodeBody(t, resp)["redirect"])
}

func TestDashboardRoute(t *testing.T) {
	assert.Equal(t, "/dashboard/donor", DashboardRoute(domain.RoleDonor))
	assert.Equal(t, "/dashboard/seeker", DashboardRoute(domain.RoleSeeker))
	assert.Equal(t, "/dashboard/admin", DashboardRoute(domain.RoleAdmin))
	assert.Equal(t, "/dashboard/admin", DashboardRoute("mystery"))
}
