package utils

import (
	"regexp"
	"strings"
)

var phoneRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)

var bloodTypes = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

var urgencies = map[string]bool{
	"low": true, "medium": true, "high": true, "critical": true,
}

func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func ValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

func ValidBloodType(bt string) bool {
	return bloodTypes[bt]
}

func ValidUrgency(u string) bool {
	return urgencies[u]
}
