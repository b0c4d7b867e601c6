// Package feedback provides the customer Feedback entity.
package feedback

import (
	"errors"
	"strings"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
)

var (
	ErrFeedbackIsNotConstructed = errors.New("Feedback must be created via NewFeedback constructor")

	// ErrNoDeliveredOrder is returned when a customer without a delivered order
	// leaves feedback.
	ErrNoDeliveredOrder = errs.NewStateConflictError("feedback only for delivered items")
)

// Feedback is a rating left by a customer for a delivered order.
type Feedback struct {
	id        kernel.UUID
	userID    kernel.UUID
	orderCode kernel.OrderCode
	email     kernel.Email
	rating    int
	comment   string
	createdAt time.Time

	isConstructed bool
}

func NewFeedback(
	id kernel.UUID,
	userID kernel.UUID,
	orderCode kernel.OrderCode,
	email kernel.Email,
	rating int,
	comment string,
	createdAt time.Time,
) (*Feedback, error) {
	if err := errors.Join(id.Validate(), userID.Validate(), orderCode.Validate(), email.Validate()); err != nil {
		return nil, err
	}
	if rating < MinRating || rating > MaxRating {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > MaxCommentLength {
		return nil, errs.NewValueIsOutOfRangeError("comment length", len(comment), 0, MaxCommentLength)
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}

	return &Feedback{
		id:            id,
		userID:        userID,
		orderCode:     orderCode,
		email:         email,
		rating:        rating,
		comment:       comment,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Feedback was built through NewFeedback.
func (f *Feedback) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFeedbackIsNotConstructed
	}
	return nil
}

// ID returns the feedback's unique identifier.
func (f *Feedback) ID() kernel.UUID {
	return f.id
}

// UserID returns the customer who left the rating.
func (f *Feedback) UserID() kernel.UUID {
	return f.userID
}

// OrderCode returns the delivered order the rating refers to.
func (f *Feedback) OrderCode() kernel.OrderCode {
	return f.orderCode
}

// Email returns the customer's address as submitted.
func (f *Feedback) Email() kernel.Email {
	return f.email
}

// Rating returns the score between 1 and 5.
func (f *Feedback) Rating() int {
	return f.rating
}

// Comment returns the optional free-text remark.
func (f *Feedback) Comment() string {
	return f.comment
}

// CreatedAt returns when the feedback was recorded.
func (f *Feedback) CreatedAt() time.Time {
	return f.createdAt
}
