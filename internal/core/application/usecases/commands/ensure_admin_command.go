package commands

import (
	"errors"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/guard"
)

var ErrEnsureAdminCommandIsNotConstructed = errors.New(
	"EnsureAdminCommand must be created via NewEnsureAdminCommand constructor",
)

// DefaultAdminName is the display name of a seeded administrator.
const DefaultAdminName = "Administrator"

// EnsureAdminCommand seeds the configured administrator account at start-up.
type EnsureAdminCommand struct { //nolint:recvcheck //using for validation
	email    kernel.Email
	password string

	guard guard.ConstructorGuard
}

func NewEnsureAdminCommand(email, password string) (EnsureAdminCommand, error) {
	addr, emailErr := kernel.NewEmail(email)
	if err := errors.Join(emailErr, validatePassword(password)); err != nil {
		return EnsureAdminCommand{}, err
	}

	return EnsureAdminCommand{email: addr, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c EnsureAdminCommand) Validate() error {
	return c.guard.Validate(ErrEnsureAdminCommandIsNotConstructed)
}

func (c EnsureAdminCommand) Email() kernel.Email {
	return c.email
}

func (c EnsureAdminCommand) Password() string {
	return c.password
}
