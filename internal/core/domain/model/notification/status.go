package notification

import (
	"fmt"

	"shopsecure/internal/pkg/errs"
)

// ErrNotificationNotPending is returned for a transition from a final status.
var ErrNotificationNotPending = errs.NewStateConflictError("notification is not pending")

// ErrEntryAlreadyClaimed is returned when another sender holds the entry.
var ErrEntryAlreadyClaimed = errs.NewStateConflictError("notification is claimed by another sender")

// Status of an outbox entry.
//
//	Pending ──send ok──> Delivered
//	   │──passcode expired──> Abandoned
//	   └──passcode re-issued──> Superseded
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusDelivered
	StatusAbandoned
	StatusSuperseded
)

var statusNames = map[Status]string{
	StatusUnknown:    "UNKNOWN",
	StatusPending:    "PENDING",
	StatusDelivered:  "DELIVERED",
	StatusAbandoned:  "ABANDONED",
	StatusSuperseded: "SUPERSEDED",
}

func (s Status) Validate() error {
	if s < StatusPending || s > StatusSuperseded {
		return errs.NewValueIsInvalidErrorWithCause("notification status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// close moves a Pending entry to the final status target.
func (s Status) close(target Status) (Status, error) {
	if s != StatusPending {
		return 0, ErrNotificationNotPending
	}
	return target, nil
}
