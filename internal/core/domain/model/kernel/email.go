package kernel

import (
	"net/mail"
	"strings"

	"shopsecure/internal/pkg/errs"
)

// ErrEmailIsNotConstructed is returned when validating a zero-value Email.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("Email must be created via NewEmail")

// Email is a validated contact address. Addresses are compared case-insensitively,
// so the stored form is lower case.
type Email struct {
	address string
}

// NewEmail validates a bare address such as "jane@example.com".
// Display-name forms ("Jane <jane@example.com>") are rejected.
func NewEmail(address string) (Email, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}

	parsed, err := mail.ParseAddress(trimmed)
	if err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if parsed.Address != trimmed {
		return Email{}, errs.NewValueIsInvalidError("email")
	}

	return Email{address: strings.ToLower(parsed.Address)}, nil
}

func (e Email) String() string {
	return e.address
}

func (e Email) IsEqual(other Email) bool {
	return e.address == other.address
}

func (e Email) Validate() error {
	if e.address == "" {
		return ErrEmailIsNotConstructed
	}
	return nil
}
