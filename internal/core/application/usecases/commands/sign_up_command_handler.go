package commands

import (
	"context"
	"log/slog"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/user"
	"shopsecure/internal/core/ports"
)

type SignUpCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      ports.Clock
	logger     *slog.Logger
}

// NewSignUpCommandHandler wires the handler to its collaborators.
func NewSignUpCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock ports.Clock,
	logger *slog.Logger,
) SignUpCommandHandler {
	return SignUpCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
		logger:     logger.With("component", "sign_up_handler"),
	}
}

// Handle returns the id of the new account, or user.ErrEmailAlreadyRegistered.
func (h *SignUpCommandHandler) Handle(ctx context.Context, cmd SignUpCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return kernel.UUID{}, err
	}

	u, err := user.NewUser(kernel.NewUUID(), cmd.Name(), cmd.Email(), hash, user.RoleCustomer, h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	h.logger.InfoContext(ctx, "account registered", "user_id", u.ID().String())
	return u.ID(), nil
}
