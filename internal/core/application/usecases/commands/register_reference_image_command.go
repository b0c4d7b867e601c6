package commands

import (
	"errors"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/user"
	"shopsecure/internal/pkg/guard"
)

var ErrRegisterReferenceImageCommandIsNotConstructed = errors.New(
	"RegisterReferenceImageCommand must be created via NewRegisterReferenceImageCommand constructor",
)

// RegisterReferenceImageCommand stores the canonical product image of an order
// at fulfillment time. Only administrators may issue it.
type RegisterReferenceImageCommand struct { //nolint:recvcheck //using for validation
	principal user.Principal
	orderCode kernel.OrderCode
	image     []byte

	guard guard.ConstructorGuard
}

func NewRegisterReferenceImageCommand(
	principal user.Principal,
	orderCode string,
	image []byte,
) (RegisterReferenceImageCommand, error) {
	cmd := RegisterReferenceImageCommand{
		principal: principal,
		guard:     guard.NewConstructorGuard(),
	}

	code, codeErr := kernel.OrderCodeFromString(orderCode)
	if err := errors.Join(codeErr, validateDecodableImage("reference image", image)); err != nil {
		return RegisterReferenceImageCommand{}, err
	}

	cmd.orderCode = code
	cmd.image = image
	return cmd, nil
}

func (c RegisterReferenceImageCommand) Validate() error {
	return c.guard.Validate(ErrRegisterReferenceImageCommandIsNotConstructed)
}

func (c RegisterReferenceImageCommand) Principal() user.Principal {
	return c.principal
}

func (c RegisterReferenceImageCommand) OrderCode() kernel.OrderCode {
	return c.orderCode
}

func (c RegisterReferenceImageCommand) Image() []byte {
	return c.image
}
