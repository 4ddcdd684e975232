package helper

import (
	"testing"
	"time"

	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{
		ID:           42,
		Email:        "donor@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		IsVerified:   false,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	a := SetupAuth("secret")

	hashed, err := a.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hashed)

	assert.NoError(t, a.VerifyPassword("correct horse battery", hashed))
	assert.Error(t, a.VerifyPassword("wrong", hashed))
}

func TestMintAndCheckToken(t *testing.T) {
	a := SetupAuth("secret")
	usr := testUser()

	token, err := a.MintToken(usr, PurposeVerifyEmail, VerifyTokenTTL)
	require.NoError(t, err)

	assert.NoError(t, a.CheckToken(token, usr, PurposeVerifyEmail))
}

func TestCheckTokenRejectsWrongPurpose(t *testing.T) {
	a := SetupAuth("secret")
	usr := testUser()

	token, err := a.MintToken(usr, PurposeVerifyEmail, VerifyTokenTTL)
	require.NoError(t, err)

	assert.ErrorIs(t, a.CheckToken(token, usr, PurposeResetPassword), ErrInvalidToken)
}

func TestCheckTokenRejectsWrongUser(t *testing.T) {
	a := SetupAuth("secret")
	usr := testUser()

	token, err := a.MintToken(usr, PurposeVerifyEmail, VerifyTokenTTL)
	require.NoError(t, err)

	other := testUser()
	other.ID = 43
	assert.ErrorIs(t, a.CheckToken(token, other, PurposeVerifyEmail), ErrInvalidToken)
}

func TestCheckTokenBoundToAccountState(t *testing.T) {
	a := SetupAuth("secret")
	usr := testUser()

	token, err := a.MintToken(usr, PurposeVerifyEmail, VerifyTokenTTL)
	require.NoError(t, err)

	// flipping verification state invalidates the outstanding token
	usr.IsVerified = true
	assert.ErrorIs(t, a.CheckToken(token, usr, PurposeVerifyEmail), ErrInvalidToken)

	usr.IsVerified = false
	require.NoError(t, a.CheckToken(token, usr, PurposeVerifyEmail))

	// so does changing the password hash
	usr.PasswordHash = "$2a$10$completelydifferenthash"
	assert.ErrorIs(t, a.CheckToken(token, usr, PurposeVerifyEmail), ErrInvalidToken)
}

func TestCheckTokenRejectsExpired(t *testing.T) {
	a := SetupAuth("secret")
	usr := testUser()

	token, err := a.MintToken(usr, PurposeResetPassword, -time.Minute)
	require.NoError(t, err)

	assert.ErrorIs(t, a.CheckToken(token, usr, PurposeResetPassword), ErrInvalidToken)
}

func TestCheckTokenRejectsWrongSecret(t *testing.T) {
	usr := testUser()

	token, err := SetupAuth("secret-a").MintToken(usr, PurposeVerifyEmail, VerifyTokenTTL)
	require.NoError(t, err)

	assert.ErrorIs(t, SetupAuth("secret-b").CheckToken(token, usr, PurposeVerifyEmail), ErrInvalidToken)
}

func TestUIDRoundTrip(t *testing.T) {
	for _, id := range []uint{1, 42, 99999} {
		decoded, err := DecodeUID(EncodeUID(id))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestDecodeUIDMalformed(t *testing.T) {
	for _, s := range []string{"", "%%%", "bm90LWEtbnVtYmVy", EncodeUID(0), "!!!!"} {
		_, err := DecodeUID(s)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", s)
	}
}

func TestRoleAllowed(t *testing.T) {
	cases := []struct {
		role    string
		allowed []string
		want    bool
	}{
		{"donor", []string{"donor"}, true},
		{"donor", []string{"seeker"}, false},
		{"admin", []string{"donor", "seeker", "admin"}, true},
		{"seeker", []string{"donor", "admin"}, false},
		{"", []string{"donor"}, false},
		{"donor", nil, false},
		{"Donor", []string{"donor"}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoleAllowed(tc.role, tc.allowed...), "role=%q allowed=%v", tc.role, tc.allowed)
	}
}
