package commands

import (
	"errors"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/guard"
)

var ErrIssuePasscodeCommandIsNotConstructed = errors.New(
	"IssuePasscodeCommand must be created via NewIssuePasscodeCommand constructor",
)

// IssuePasscodeCommand requests a delivery passcode for one of the caller's
// orders. Without an order code the caller's most recent Pending order is used.
type IssuePasscodeCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	orderCode kernel.OrderCode

	guard guard.ConstructorGuard
}

func NewIssuePasscodeCommand(userID kernel.UUID, orderCode string) (IssuePasscodeCommand, error) {
	code, codeErr := parseOptionalOrderCode(orderCode)
	if err := errors.Join(userID.Validate(), codeErr); err != nil {
		return IssuePasscodeCommand{}, err
	}

	return IssuePasscodeCommand{
		userID:    userID,
		orderCode: code,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c IssuePasscodeCommand) Validate() error {
	return c.guard.Validate(ErrIssuePasscodeCommandIsNotConstructed)
}

func (c IssuePasscodeCommand) UserID() kernel.UUID {
	return c.userID
}

// OrderCode returns the addressed order, or the zero code for "latest pending".
func (c IssuePasscodeCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}
