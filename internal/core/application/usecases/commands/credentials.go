package commands

import (
	"strings"

	"shopsecure/internal/pkg/errs"
)

const (
	MinPasswordLength = 8

	// MaxPasswordLength is the longest input bcrypt hashes without truncation.
	MaxPasswordLength = 72
)

func validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return errs.NewValueIsRequiredError("password")
	}
	if n := len(password); n < MinPasswordLength || n > MaxPasswordLength {
		return errs.NewValueIsOutOfRangeError("password length", n, MinPasswordLength, MaxPasswordLength)
	}
	return nil
}
