package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Usernames: letters, digits, dots, underscores, hyphens.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)

func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// NIS validation (student number, digits only)
func IsValidNIS(nis string) bool {
	return len(nis) >= 4 && len(nis) <= 20 && IsNumeric(nis)
}

// NIP validation (teacher number, digits only)
func IsValidNIP(nip string) bool {
	return len(nip) >= 4 && len(nip) <= 20 && IsNumeric(nip)
}

// Phone number validation
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	if strings.HasPrefix(phone, "+") {
		phone = phone[1:]
	}
	return len(phone) >= 8 && len(phone) <= 15 && IsNumeric(phone)
}
