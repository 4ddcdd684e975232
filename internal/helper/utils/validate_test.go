package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "donor@example.com", NormalizeEmail("  Donor@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestValidPhone(t *testing.T) {
	valid := []string{"+66912345678", "0912345678", "+19998887777", "999999999"}
	for _, p := range valid {
		assert.True(t, ValidPhone(p), p)
	}

	invalid := []string{"", "12345", "phone", "+66 91 234 5678", "+6691234567890123456"}
	for _, p := range invalid {
		assert.False(t, ValidPhone(p), p)
	}
}

func TestValidBloodType(t *testing.T) {
	for _, bt := range []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"} {
		assert.True(t, ValidBloodType(bt), bt)
	}
	for _, bt := range []string{"", "C+", "o+", "AB", "A +"} {
		assert.False(t, ValidBloodType(bt), bt)
	}
}

func TestValidUrgency(t *testing.T) {
	for _, u := range []string{"low", "medium", "high", "critical"} {
		assert.True(t, ValidUrgency(u), u)
	}
	for _, u := range []string{"", "urgent", "Medium"} {
		assert.False(t, ValidUrgency(u), u)
	}
}
