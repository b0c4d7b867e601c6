package ports

import (
	"context"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/user"
)

// Notifier delivers a message to a customer. Errors are transport failures; the
// caller decides whether they are fatal.
type Notifier interface {
	Send(ctx context.Context, to kernel.Email, subject, body string) error
}

// ImageStore keeps uploaded image bytes under generated, collision-resistant
// references that can later be served back.
type ImageStore interface {
	// Save stores data under a new reference inside scope, e.g. an order code.
	Save(ctx context.Context, scope string, data []byte) (string, error)

	// Load returns the bytes for a reference or an errs.ObjectNotFoundError.
	Load(ctx context.Context, ref string) ([]byte, error)

	// Delete removes a stored image. Deleting a missing reference is not an error.
	Delete(ctx context.Context, ref string) error
}

// PasscodeGenerator produces fresh delivery passcodes.
type PasscodeGenerator interface {
	Generate() (string, error)
}

// PasscodeGeneratorFunc adapts a function to PasscodeGenerator.
type PasscodeGeneratorFunc func() (string, error)

func (f PasscodeGeneratorFunc) Generate() (string, error) {
	return f()
}

type Clock interface {
	Now() time.Time
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer signs and verifies bearer tokens carrying a Principal.
type TokenIssuer interface {
	Issue(principal user.Principal) (token string, expiresAt time.Time, err error)
	Parse(token string) (user.Principal, error)
}
