package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shopsecure/internal/core/domain/model/user"
	"shopsecure/internal/core/ports"
)

type LoginResult struct {
	Principal user.Principal
	Token     string
	ExpiresAt time.Time
}

// LoginCommandHandler authenticates an account and issues a bearer token.
//
// The user row is locked for the duration of the check so that concurrent wrong
// passwords each count towards the lockout.
type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenIssuer
	policy     user.LoginPolicy
	logger     *slog.Logger
}

// NewLoginCommandHandler wires the handler to its collaborators.
func NewLoginCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	policy user.LoginPolicy,
	logger *slog.Logger,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		tokens:     tokens,
		policy:     policy,
		logger:     logger.With("component", "login_handler"),
	}
}

// Handle verifies credentials and issues a bearer token.
//
// A wrong password increments the failure counter, which is committed even
// though the login fails. A locked account is refused before the password is
// compared.
//
// Parameters:
//   - ctx: request context
//   - cmd: email and password
//
// Returns:
//   - the principal, signed token and its expiry
//   - user.ErrInvalidCredentials or user.ErrAccountLocked on refusal
func (h *LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	principal, err := h.authenticate(ctx, cmd)
	if err != nil {
		return LoginResult{}, err
	}

	token, expiresAt, err := h.tokens.Issue(principal)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Principal: principal, Token: token, ExpiresAt: expiresAt}, nil
}

func (h *LoginCommandHandler) authenticate(ctx context.Context, cmd LoginCommand) (user.Principal, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return user.Principal{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	u, err := users.GetByEmailForUpdate(ctx, cmd.Email())
	if err != nil {
		return user.Principal{}, err
	}

	authErr := u.Authenticate(func(hash string) bool {
		return h.hasher.Compare(hash, cmd.Password())
	}, h.policy)
	if errors.Is(authErr, user.ErrAccountLocked) {
		h.logger.WarnContext(ctx, "login refused for locked account", "user_id", u.ID().String())
		return user.Principal{}, authErr
	}

	if err = users.Update(ctx, u); err != nil {
		return user.Principal{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return user.Principal{}, err
	}

	if authErr != nil {
		h.logger.InfoContext(ctx, "login failed",
			"user_id", u.ID().String(), "failed_logins", u.FailedLogins())
		return user.Principal{}, authErr
	}

	return u.Principal(), nil
}
