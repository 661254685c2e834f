package utils

import (
	"fmt"
	"math/rand"
	"time"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ123456789")

func GenerateRandomStringWithLength(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// GenerateRandomDigits returns n random decimal digits as a string.
func GenerateRandomDigits(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}

// GenerateReferenceNumber builds a reference of the form
// PREFIX-<unix timestamp><4 random digits>, e.g. CLM-17246178344821.
// Uniqueness is enforced by the database constraint, not here: a
// timestamp collision with matching random digits is possible.
func GenerateReferenceNumber(prefix string) string {
	return fmt.Sprintf("%s-%d%s", prefix, time.Now().Unix(), GenerateRandomDigits(4))
}
