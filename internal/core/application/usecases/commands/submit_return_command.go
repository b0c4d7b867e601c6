package commands

import (
	"errors"
	"strings"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/returns"
	"shopsecure/internal/pkg/errs"
	"shopsecure/internal/pkg/guard"
)

var ErrSubmitReturnCommandIsNotConstructed = errors.New(
	"SubmitReturnCommand must be created via NewSubmitReturnCommand constructor",
)

// SubmitReturnCommand asks for a delivered order to be taken back. The photo of
// the returned item is compared with the order's reference image.
type SubmitReturnCommand struct { //nolint:recvcheck //using for validation
	orderCode      kernel.OrderCode
	requesterEmail kernel.Email
	reason         string
	image          []byte

	guard guard.ConstructorGuard
}

func NewSubmitReturnCommand(
	orderCode string,
	requesterEmail string,
	reason string,
	image []byte,
) (SubmitReturnCommand, error) {
	code, codeErr := kernel.OrderCodeFromString(orderCode)
	email, emailErr := kernel.NewEmail(requesterEmail)

	var reasonErr error
	reason = strings.TrimSpace(reason)
	switch {
	case reason == "":
		reasonErr = errs.NewValueIsRequiredError("reason")
	case len(reason) > returns.MaxReasonLength:
		reasonErr = errs.NewValueIsOutOfRangeError("reason length", len(reason), 1, returns.MaxReasonLength)
	}

	if err := errors.Join(codeErr, emailErr, reasonErr, validateImageSize("image", image)); err != nil {
		return SubmitReturnCommand{}, err
	}

	return SubmitReturnCommand{
		orderCode:      code,
		requesterEmail: email,
		reason:         reason,
		image:          image,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitReturnCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReturnCommandIsNotConstructed)
}

func (c SubmitReturnCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

func (c SubmitReturnCommand) RequesterEmail() kernel.Email {
	return c.requesterEmail
}

func (c SubmitReturnCommand) Reason() string {
	return c.reason
}

func (c SubmitReturnCommand) Image() []byte {
	return c.image
}
