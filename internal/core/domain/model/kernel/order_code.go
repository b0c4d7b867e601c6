package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"shopsecure/internal/pkg/errs"

	"github.com/google/uuid"
)

// OrderCodeLength is the number of characters in an external order code.
const OrderCodeLength = 8

var orderCodePattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

// ErrOrderCodeIsNotConstructed is returned when validating a zero-value OrderCode.
var ErrOrderCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderCode must be created via NewOrderCode or OrderCodeFromString",
)

// OrderCode is the opaque, customer-facing identifier of an order.
// It is distinct from the internal primary key and is what customers type
// when they ask for a passcode or submit a return.
//
// Codes are the first eight hexadecimal characters of a random UUID in upper case,
// e.g. "3F9A01BC".
type OrderCode struct {
	value string
}

// NewOrderCode generates a fresh random order code.
func NewOrderCode() OrderCode {
	return OrderCode{value: strings.ToUpper(uuid.NewString()[:OrderCodeLength])}
}

// OrderCodeFromString parses a code supplied by a client. Surrounding spaces are
// ignored and lower-case input is accepted.
func OrderCodeFromString(s string) (OrderCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return OrderCode{}, errs.NewValueIsRequiredError("order code")
	}
	if !orderCodePattern.MatchString(normalized) {
		return OrderCode{}, errs.NewValueIsInvalidErrorWithCause(
			"order code",
			fmt.Errorf("%q is not %d hexadecimal characters", s, OrderCodeLength),
		)
	}
	return OrderCode{value: normalized}, nil
}

// String returns the canonical upper-case representation.
func (c OrderCode) String() string {
	return c.value
}

// IsEqual reports whether both codes identify the same order.
func (c OrderCode) IsEqual(other OrderCode) bool {
	return c.value == other.value
}

// IsZero reports whether the code was never set.
func (c OrderCode) IsZero() bool {
	return c.value == ""
}

// Validate returns ErrOrderCodeIsNotConstructed for the zero value.
func (c OrderCode) Validate() error {
	if c.value == "" {
		return ErrOrderCodeIsNotConstructed
	}
	return nil
}
