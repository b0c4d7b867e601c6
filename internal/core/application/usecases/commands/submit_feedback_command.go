package commands

import (
	"errors"

	"shopsecure/internal/core/domain/model/feedback"
	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
	"shopsecure/internal/pkg/guard"
)

var ErrSubmitFeedbackCommandIsNotConstructed = errors.New(
	"SubmitFeedbackCommand must be created via NewSubmitFeedbackCommand constructor",
)

// SubmitFeedbackCommand rates a delivered item.
type SubmitFeedbackCommand struct { //nolint:recvcheck //using for validation
	email   kernel.Email
	rating  int
	comment string

	guard guard.ConstructorGuard
}

func NewSubmitFeedbackCommand(email string, rating int, comment string) (SubmitFeedbackCommand, error) {
	addr, emailErr := kernel.NewEmail(email)

	var ratingErr error
	if rating < feedback.MinRating || rating > feedback.MaxRating {
		ratingErr = errs.NewValueIsOutOfRangeError("rating", rating, feedback.MinRating, feedback.MaxRating)
	}

	if err := errors.Join(emailErr, ratingErr); err != nil {
		return SubmitFeedbackCommand{}, err
	}

	return SubmitFeedbackCommand{
		email:   addr,
		rating:  rating,
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitFeedbackCommandIsNotConstructed)
}

func (c SubmitFeedbackCommand) Email() kernel.Email {
	return c.email
}

func (c SubmitFeedbackCommand) Rating() int {
	return c.rating
}

func (c SubmitFeedbackCommand) Comment() string {
	return c.comment
}
