package commands

import (
	"errors"
	"strings"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
	"shopsecure/internal/pkg/guard"
)

var ErrVerifyPasscodeCommandIsNotConstructed = errors.New(
	"VerifyPasscodeCommand must be created via NewVerifyPasscodeCommand constructor",
)

// VerifyPasscodeCommand submits a passcode for one of the caller's orders.
// Without an order code the caller's most recent Pending order is used.
type VerifyPasscodeCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	orderCode kernel.OrderCode
	passcode  string

	guard guard.ConstructorGuard
}

func NewVerifyPasscodeCommand(userID kernel.UUID, orderCode, passcode string) (VerifyPasscodeCommand, error) {
	code, codeErr := parseOptionalOrderCode(orderCode)

	var passcodeErr error
	passcode = strings.TrimSpace(passcode)
	if passcode == "" {
		passcodeErr = errs.NewValueIsRequiredError("passcode")
	}

	if err := errors.Join(userID.Validate(), codeErr, passcodeErr); err != nil {
		return VerifyPasscodeCommand{}, err
	}

	return VerifyPasscodeCommand{
		userID:    userID,
		orderCode: code,
		passcode:  passcode,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyPasscodeCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPasscodeCommandIsNotConstructed)
}

func (c VerifyPasscodeCommand) UserID() kernel.UUID {
	return c.userID
}

func (c VerifyPasscodeCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

func (c VerifyPasscodeCommand) Passcode() string {
	return c.passcode
}
