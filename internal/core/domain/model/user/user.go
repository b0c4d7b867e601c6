package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
)

// DefaultMaxFailedLogins is the number of consecutive failures that lock an account.
const DefaultMaxFailedLogins = 5

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

	// ErrEmailAlreadyRegistered is returned by sign-up for a taken address.
	ErrEmailAlreadyRegistered = errs.NewStateConflictError("email already registered")

	// ErrInvalidCredentials is returned for a wrong password.
	ErrInvalidCredentials = errs.NewAccessDeniedError("invalid credentials")

	// ErrAccountLocked is returned once the failed login limit is reached.
	ErrAccountLocked = errs.NewAccessDeniedError("account locked after too many failed logins")
)

// LoginPolicy configures account lockout.
type LoginPolicy struct {
	maxFailures int
}

// NewLoginPolicy builds a policy that locks an account after maxFailures
// consecutive wrong passwords.
//
// Parameters:
//   - maxFailures: failures before lockout, must be positive
//
// Returns a ValueIsInvalid error for a non-positive limit.
func NewLoginPolicy(maxFailures int) (LoginPolicy, error) {
	if maxFailures <= 0 {
		return LoginPolicy{}, errs.NewValueIsInvalidErrorWithCause(
			"login max failures", fmt.Errorf("%d is not positive", maxFailures))
	}
	return LoginPolicy{maxFailures: maxFailures}, nil
}

// DefaultLoginPolicy locks an account after five failures.
func DefaultLoginPolicy() LoginPolicy {
	return LoginPolicy{maxFailures: DefaultMaxFailedLogins}
}

// MaxFailures returns the number of consecutive failures that lock an account.
func (p LoginPolicy) MaxFailures() int {
	return p.maxFailures
}

// User is a registered account.
type User struct {
	id           kernel.UUID
	name         string
	email        kernel.Email
	passwordHash string
	role         Role
	failedLogins int
	createdAt    time.Time

	isConstructed bool
}

// NewUser registers an account with no failed logins. passwordHash is the
// output of the configured password hasher, never the plain password.
func NewUser(
	id kernel.UUID,
	name string,
	email kernel.Email,
	passwordHash string,
	role Role,
	createdAt time.Time,
) (*User, error) {
	return RestoreUser(id, name, email, passwordHash, role, 0, createdAt)
}

// RestoreUser rebuilds an account from persistence.
func RestoreUser(
	id kernel.UUID,
	name string,
	email kernel.Email,
	passwordHash string,
	role Role,
	failedLogins int,
	createdAt time.Time,
) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.setIdentity(id, email),
		u.setName(name),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
		u.setFailedLogins(failedLogins),
		u.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the User was built through NewUser or RestoreUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the display name given at sign-up.
func (u *User) Name() string {
	return u.name
}

// Email returns the login address. It is unique across users.
func (u *User) Email() kernel.Email {
	return u.email
}

// PasswordHash returns the stored bcrypt hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role returns whether the user is a customer or an admin.
func (u *User) Role() Role {
	return u.role
}

// FailedLogins returns the count of wrong passwords since the last success.
func (u *User) FailedLogins() int {
	return u.failedLogins
}

// CreatedAt returns when the account was registered.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// Principal returns the identity a token is issued for.
func (u *User) Principal() Principal {
	return Principal{UserID: u.id, Email: u.email, Role: u.role}
}

// IsLocked reports whether the account reached the failure limit.
func (u *User) IsLocked(policy LoginPolicy) bool {
	return u.failedLogins >= policy.maxFailures
}

// Authenticate checks a login attempt. verify compares the submitted password with
// the stored hash.
//
// A locked account fails with ErrAccountLocked without consulting verify. A wrong
// password increments the failure counter and fails with ErrInvalidCredentials; the
// caller persists the user in both outcomes. Success resets the counter.
func (u *User) Authenticate(verify func(passwordHash string) bool, policy LoginPolicy) error {
	if u.IsLocked(policy) {
		return ErrAccountLocked
	}

	if !verify(u.passwordHash) {
		u.failedLogins++
		return ErrInvalidCredentials
	}

	u.failedLogins = 0
	return nil
}

// Promote grants the admin role and replaces the credential. Used to seed the
// configured administrator account.
func (u *User) Promote(passwordHash string) error {
	if err := u.setPasswordHash(passwordHash); err != nil {
		return err
	}
	u.role = RoleAdmin
	u.failedLogins = 0
	return nil
}

func (u *User) setIdentity(id kernel.UUID, email kernel.Email) error {
	if err := errors.Join(id.Validate(), email.Validate()); err != nil {
		return err
	}
	u.id = id
	u.email = email
	return nil
}

func (u *User) setName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = trimmed
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setFailedLogins(n int) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause("failed logins", fmt.Errorf("%d is negative", n))
	}
	u.failedLogins = n
	return nil
}

func (u *User) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	u.createdAt = createdAt
	return nil
}
