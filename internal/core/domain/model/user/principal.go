package user

import (
	"errors"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
)

// ErrAdminRequired is returned when a customer calls an administrative operation.
var ErrAdminRequired = errs.NewAccessDeniedError("admin role required")

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID kernel.UUID
	Email  kernel.Email
	Role   Role
}

// NewPrincipal validates the identity carried by a token.
func NewPrincipal(userID kernel.UUID, email kernel.Email, role Role) (Principal, error) {
	if err := errors.Join(userID.Validate(), email.Validate(), role.Validate()); err != nil {
		return Principal{}, err
	}
	return Principal{UserID: userID, Email: email, Role: role}, nil
}

// IsAdmin reports whether the caller has the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// RequireAdmin returns ErrAdminRequired unless the principal is an administrator.
func (p Principal) RequireAdmin() error {
	if !p.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}
