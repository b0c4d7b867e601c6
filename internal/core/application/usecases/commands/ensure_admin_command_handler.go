package commands

import (
	"context"
	"errors"
	"log/slog"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/user"
	"shopsecure/internal/core/ports"
	"shopsecure/internal/pkg/errs"
)

// EnsureAdminCommandHandler makes sure the configured account exists with the
// admin role and the configured password. Running it again is a no-op.
type EnsureAdminCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      ports.Clock
	logger     *slog.Logger
}

// NewEnsureAdminCommandHandler wires the handler to its collaborators.
func NewEnsureAdminCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock ports.Clock,
	logger *slog.Logger,
) EnsureAdminCommandHandler {
	return EnsureAdminCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
		logger:     logger.With("component", "ensure_admin_handler"),
	}
}

// Handle creates the admin account, or promotes an existing user with that
// email and resets its password. Running it again with the same credentials
// is a no-op.
func (h *EnsureAdminCommandHandler) Handle(ctx context.Context, cmd EnsureAdminCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	existing, err := users.GetByEmailForUpdate(ctx, cmd.Email())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if err = h.create(ctx, users, cmd); err != nil {
			return err
		}
	case err != nil:
		return err
	case existing.Role() == user.RoleAdmin && h.hasher.Compare(existing.PasswordHash(), cmd.Password()):
		return nil
	default:
		if err = h.promote(ctx, users, existing, cmd); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *EnsureAdminCommandHandler) create(ctx context.Context, users ports.UserRepository, cmd EnsureAdminCommand) error {
	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return err
	}

	admin, err := user.NewUser(kernel.NewUUID(), DefaultAdminName, cmd.Email(), hash, user.RoleAdmin, h.clock.Now())
	if err != nil {
		return err
	}

	if err = users.Add(ctx, admin); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "administrator account created", "user_id", admin.ID().String())
	return nil
}

func (h *EnsureAdminCommandHandler) promote(
	ctx context.Context,
	users ports.UserRepository,
	existing *user.User,
	cmd EnsureAdminCommand,
) error {
	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return err
	}

	if err = existing.Promote(hash); err != nil {
		return err
	}

	if err = users.Update(ctx, existing); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "administrator account updated", "user_id", existing.ID().String())
	return nil
}
