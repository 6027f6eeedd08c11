// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/go-petr/account-api/internal/domain"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digits   = "0123456789"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Digits generates a random string of n digits.
func Digits(n int) string {
	var sb strings.Builder

	k := len(digits)

	for i := 0; i < n; i++ {
		c := digits[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Name generates a random account holder name.
func Name() string {
	return String(6)
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}

// Address generates a random street address.
func Address() string {
	return fmt.Sprintf("%s %s street", Digits(3), String(8))
}

// PhoneNumber generates a random ten digit phone number.
func PhoneNumber() string {
	return Digits(10)
}

// DateBefore generates a random date up to n days before today.
func DateBefore(n int) domain.Date {
	y, m, d := time.Now().UTC().AddDate(0, 0, -int(Intn(n))).Date()
	return domain.NewDate(y, m, d)
}
