package order

import (
	"fmt"

	"shopsecure/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──(passcode verified)──> Delivered
//
// Delivered is final. The transition only happens as a side effect of
// successful passcode verification.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is placed and awaits delivery confirmation.
	Pending

	// Delivered indicates the customer confirmed receipt with a valid passcode.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Delivered: "DELIVERED",
	}
}

// Validate checks that the status is Pending or Delivered.
func (s Status) Validate() error {
	if s != Pending && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted/display name, e.g. "PENDING".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Pending -> Delivered
//
// Returns ErrOrderNotPending for any other source status.
func (s Status) Deliver() (Status, error) {
	if s != Pending {
		return 0, ErrOrderNotPending
	}
	return Delivered, nil
}
