package ports

import (
	"context"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// Add persists a new user. Returns user.ErrEmailAlreadyRegistered when the
	// email is taken.
	Add(ctx context.Context, u *user.User) error

	// Update persists credential, role and failed login changes.
	Update(ctx context.Context, u *user.User) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error)

	// GetByEmailForUpdate row-locks the user so concurrent logins cannot lose
	// failed login increments.
	GetByEmailForUpdate(ctx context.Context, email kernel.Email) (*user.User, error)
}
