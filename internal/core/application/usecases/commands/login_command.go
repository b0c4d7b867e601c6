package commands

import (
	"errors"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
	"shopsecure/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New("LoginCommand must be created via NewLoginCommand constructor")

type LoginCommand struct { //nolint:recvcheck //using for validation
	email    kernel.Email
	password string

	guard guard.ConstructorGuard
}

// NewLoginCommand only checks presence of the password; length rules apply at sign-up.
func NewLoginCommand(email, password string) (LoginCommand, error) {
	addr, emailErr := kernel.NewEmail(email)

	var passwordErr error
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}

	if err := errors.Join(emailErr, passwordErr); err != nil {
		return LoginCommand{}, err
	}

	return LoginCommand{email: addr, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() kernel.Email {
	return c.email
}

func (c LoginCommand) Password() string {
	return c.password
}
