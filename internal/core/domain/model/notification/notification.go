package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification constructor",
)

// maxErrorLength bounds the stored transport error.
const maxErrorLength = 500

// Notification is an undelivered message waiting for retry.
type Notification struct {
	id        kernel.UUID
	orderID   kernel.UUID
	recipient kernel.Email
	subject   string
	body      string
	status    Status
	attempts  int
	lastError string
	createdAt time.Time
	expiresAt time.Time

	// claimedUntil is set while a retry worker is sending the message outside
	// the transaction that locked it.
	claimedUntil time.Time

	isConstructed bool
}

// NewNotification queues a message that is worthless after expiresAt.
func NewNotification(
	id kernel.UUID,
	orderID kernel.UUID,
	recipient kernel.Email,
	subject string,
	body string,
	createdAt time.Time,
	expiresAt time.Time,
) (*Notification, error) {
	return RestoreNotification(id, orderID, recipient, subject, body, StatusPending, 0, "", time.Time{},
		createdAt, expiresAt)
}

// NewUndeliveredNotification queues a message whose first send already failed
// with cause. The entry starts with one recorded attempt.
func NewUndeliveredNotification(
	id kernel.UUID,
	orderID kernel.UUID,
	recipient kernel.Email,
	subject string,
	body string,
	cause error,
	createdAt time.Time,
	expiresAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, orderID, recipient, subject, body, createdAt, expiresAt)
	if err != nil {
		return nil, err
	}
	if err = n.RecordFailure(cause); err != nil {
		return nil, err
	}
	return n, nil
}

// RestoreNotification rebuilds an entry from persistence. A zero claimedUntil
// means no worker holds the entry.
func RestoreNotification(
	id kernel.UUID,
	orderID kernel.UUID,
	recipient kernel.Email,
	subject string,
	body string,
	status Status,
	attempts int,
	lastError string,
	claimedUntil time.Time,
	createdAt time.Time,
	expiresAt time.Time,
) (*Notification, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), recipient.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(subject) == "" {
		return nil, errs.NewValueIsRequiredError("subject")
	}
	if body == "" {
		return nil, errs.NewValueIsRequiredError("body")
	}
	if attempts < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("attempts", fmt.Errorf("%d is negative", attempts))
	}
	if createdAt.IsZero() || expiresAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("notification timestamps")
	}
	if expiresAt.Before(createdAt) {
		return nil, errs.NewValueIsInvalidError("expires at is before created at")
	}

	return &Notification{
		id:            id,
		orderID:       orderID,
		recipient:     recipient,
		subject:       subject,
		body:          body,
		status:        status,
		attempts:      attempts,
		lastError:     lastError,
		claimedUntil:  claimedUntil,
		createdAt:     createdAt,
		expiresAt:     expiresAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the entry was built through NewNotification or RestoreNotification.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the outbox entry's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// OrderID returns the order whose passcode the message carries.
func (n *Notification) OrderID() kernel.UUID {
	return n.orderID
}

// Recipient returns the customer address the message goes to.
func (n *Notification) Recipient() kernel.Email {
	return n.recipient
}

// Subject returns the mail subject line.
func (n *Notification) Subject() string {
	return n.subject
}

// Body returns the plain-text message, including the passcode.
func (n *Notification) Body() string {
	return n.body
}

// Status returns the delivery state of the entry.
func (n *Notification) Status() Status {
	return n.status
}

// Attempts returns the number of failed sends so far.
func (n *Notification) Attempts() int {
	return n.attempts
}

// LastError returns the most recent transport error, cut to 500 bytes.
func (n *Notification) LastError() string {
	return n.lastError
}

// CreatedAt returns when the entry was queued.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// ExpiresAt returns when the passcode in the body stops being valid.
func (n *Notification) ExpiresAt() time.Time {
	return n.expiresAt
}

// ClaimedUntil returns the end of the current sender's lease, or the zero time.
func (n *Notification) ClaimedUntil() time.Time {
	return n.claimedUntil
}

// IsExpired reports whether the message content is no longer usable at now.
func (n *Notification) IsExpired(now time.Time) bool {
	return now.After(n.expiresAt)
}

// Claim reserves a Pending entry for one sender until now+lease. Other workers
// skip it until the lease runs out, so a crashed sender only delays the retry.
//
// Parameters:
//   - now: the current time
//   - lease: how long the claim holds, must be positive
//
// Returns ErrNotificationNotPending for a final entry and ErrEntryAlreadyClaimed
// while another claim is still live.
func (n *Notification) Claim(now time.Time, lease time.Duration) error {
	if n.status != StatusPending {
		return ErrNotificationNotPending
	}
	if lease <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("lease", fmt.Errorf("%s is not positive", lease))
	}
	if n.IsClaimed(now) {
		return ErrEntryAlreadyClaimed
	}
	n.claimedUntil = now.Add(lease)
	return nil
}

// IsClaimed reports whether a sender still holds the entry at now.
func (n *Notification) IsClaimed(now time.Time) bool {
	return !n.claimedUntil.IsZero() && now.Before(n.claimedUntil)
}

// RecordFailure counts a failed delivery attempt. The entry stays Pending and
// its claim is released for the next run.
func (n *Notification) RecordFailure(cause error) error {
	if n.status != StatusPending {
		return ErrNotificationNotPending
	}
	n.attempts++
	n.claimedUntil = time.Time{}
	if cause != nil {
		n.lastError = truncateError(cause.Error())
	}
	return nil
}

// truncateError keeps at most maxErrorLength bytes of valid UTF-8, cutting on
// a rune boundary. Invalid sequences are replaced first.
func truncateError(msg string) string {
	msg = strings.ToValidUTF8(msg, "\uFFFD")
	if len(msg) <= maxErrorLength {
		return msg
	}
	cut := maxErrorLength
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}

// MarkDelivered closes a Pending entry after a successful send.
func (n *Notification) MarkDelivered() error {
	return n.transition(StatusDelivered)
}

// Abandon closes a Pending entry whose passcode expired unsent.
func (n *Notification) Abandon() error {
	return n.transition(StatusAbandoned)
}

// Supersede closes a Pending entry because a newer passcode was issued.
func (n *Notification) Supersede() error {
	return n.transition(StatusSuperseded)
}

func (n *Notification) transition(target Status) error {
	s, err := n.status.close(target)
	if err != nil {
		return err
	}
	n.status = s
	n.claimedUntil = time.Time{}
	return nil
}
