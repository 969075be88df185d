package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\-\s()]{4,20}$`)
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePhone strips whitespace from a phone number before validation.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "")
	return replacer.Replace(s)
}

func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && len(email) <= 200 && emailRegex.MatchString(email)
}

func ValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	return phone != "" && len(phone) <= 50 && phoneRegex.MatchString(phone)
}
