package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

func ValidateEmail(email string) (bool, error) {
	if !emailRegex.MatchString(email) {
		return false, fmt.Errorf("email format incorrect")
	}
	return true, nil
}

// NormalizeEmail lowercases and trims an email address. Pure transform,
// applied by the calling operation before persistence.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+254[17]\d{8}$`), // +254 mobile
	regexp.MustCompile(`^254[17]\d{8}$`),   // 254 without +
	regexp.MustCompile(`^0[17]\d{8}$`),     // domestic 07xx / 01xx
}

func ValidatePhone(phone string) (bool, error) {
	for _, pattern := range phonePatterns {
		if pattern.MatchString(phone) {
			return true, nil
		}
	}
	return false, fmt.Errorf("phone format incorrect")
}

// NormalizePhone strips spaces, dashes and parentheses and rewrites
// domestic numbers to the +254 international form.
func NormalizePhone(phone string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	switch {
	case strings.HasPrefix(cleaned, "+254"):
		return cleaned
	case strings.HasPrefix(cleaned, "254"):
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "0") && len(cleaned) == 10:
		return "+254" + cleaned[1:]
	default:
		return cleaned
	}
}
