package commands

import (
	"errors"
	"strings"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
	"shopsecure/internal/pkg/guard"
)

var ErrSignUpCommandIsNotConstructed = errors.New("SignUpCommand must be created via NewSignUpCommand constructor")

// SignUpCommand registers a customer account.
type SignUpCommand struct { //nolint:recvcheck //using for validation
	name     string
	email    kernel.Email
	password string

	guard guard.ConstructorGuard
}

func NewSignUpCommand(name, email, password string) (SignUpCommand, error) {
	var nameErr error
	name = strings.TrimSpace(name)
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	addr, emailErr := kernel.NewEmail(email)
	if err := errors.Join(nameErr, emailErr, validatePassword(password)); err != nil {
		return SignUpCommand{}, err
	}

	return SignUpCommand{
		name:     name,
		email:    addr,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SignUpCommand) Validate() error {
	return c.guard.Validate(ErrSignUpCommandIsNotConstructed)
}

func (c SignUpCommand) Name() string {
	return c.name
}

func (c SignUpCommand) Email() kernel.Email {
	return c.email
}

func (c SignUpCommand) Password() string {
	return c.password
}
