package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co.ke",
		"agent+tag@example.com",
	}
	for _, email := range valid {
		ok, err := ValidateEmail(email)
		assert.True(t, ok, "%s should be valid", email)
		assert.NoError(t, err)
	}

	invalid := []string{"", "no-at-sign", "user@", "@example.com", "user@example"}
	for _, email := range invalid {
		ok, err := ValidateEmail(email)
		assert.False(t, ok, "%s should be invalid", email)
		assert.Error(t, err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@EXAMPLE.com "))
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"+254712345678", "254712345678", "0712345678", "0112345678"}
	for _, phone := range valid {
		ok, _ := ValidatePhone(phone)
		assert.True(t, ok, "%s should be valid", phone)
	}

	invalid := []string{"", "12345", "+254812345678", "071234567", "+1 202 555 0100"}
	for _, phone := range invalid {
		ok, _ := ValidatePhone(phone)
		assert.False(t, ok, "%s should be invalid", phone)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"0712 345 678":   "+254712345678",
		"0712-345-678":   "+254712345678",
		"254712345678":   "+254712345678",
		"+254712345678":  "+254712345678",
		"(0712) 345 678": "+254712345678",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizePhone(input), "input %q", input)
	}
}

func TestGenerateReferenceNumber(t *testing.T) {
	ref := GenerateReferenceNumber("QTE")

	assert.True(t, strings.HasPrefix(ref, "QTE-"))
	assert.Greater(t, len(ref), len("QTE-")+10)
}

func TestGenerateRandomDigits(t *testing.T) {
	digits := GenerateRandomDigits(6)

	assert.Len(t, digits, 6)
	for _, r := range digits {
		assert.True(t, r >= '0' && r <= '9')
	}
}
