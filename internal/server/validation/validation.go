// Package validation holds the field rules for registration, profile and
// listing payloads. Rules fail fast: callers check fields before touching
// storage.
package validation

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/aslanbek/shanyrak/internal/common"
)

var (
	usernameRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe    = regexp.MustCompile(`^\+7\d{10}$`)
	passwordRe = regexp.MustCompile(`^[A-Za-z\d]{8,}$`)
	nameRe     = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ .]+$`)
	cityRe     = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ]+$`)
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, msg)
}

// Username must be email-shaped.
func Username(v string) error {
	if !usernameRe.MatchString(v) {
		return invalid("username must be a valid email address")
	}
	return nil
}

// Phone must be +7 followed by exactly ten digits.
func Phone(v string) error {
	if !phoneRe.MatchString(v) {
		return invalid("phone number is not valid: must be +7XXXXXXXXXX")
	}
	return nil
}

// Password must be at least 8 alphanumeric characters with at least one
// letter and one digit.
func Password(v string) error {
	if !passwordRe.MatchString(v) || !containsLetterAndDigit(v) {
		return invalid("password must be at least 8 characters long and contain at least one letter and one number")
	}
	return nil
}

func containsLetterAndDigit(v string) bool {
	var letter, digit bool
	for _, r := range v {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return letter && digit
}

// Name allows Latin or Cyrillic letters, spaces and periods.
func Name(v string) error {
	if !nameRe.MatchString(v) {
		return invalid("name must contain only letters")
	}
	return nil
}

// City allows Latin or Cyrillic letters only.
func City(v string) error {
	if !cityRe.MatchString(v) {
		return invalid("city must contain only letters")
	}
	return nil
}

// Price rejects negative listing prices.
func Price(v int64) error {
	if v < 0 {
		return invalid("price must be positive")
	}
	return nil
}

// Area rejects negative listing areas.
func Area(v float64) error {
	if v < 0 {
		return invalid("area must be positive")
	}
	return nil
}

// RoomsCount rejects negative room counts.
func RoomsCount(v int) error {
	if v < 0 {
		return invalid("rooms count must be positive")
	}
	return nil
}
