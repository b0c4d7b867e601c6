package auth

import (
	"fmt"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/user"
	"shopsecure/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "shopsecure"

// ErrInvalidToken is returned for tokens that are malformed, forged or expired.
var ErrInvalidToken = errs.NewAccessDeniedError("invalid token")

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer implements ports.TokenIssuer with HS256 tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration, now func() time.Time) (*JWTIssuer, error) {
	if len(secret) < 32 {
		return nil, errs.NewValueIsInvalidErrorWithCause("jwt secret", fmt.Errorf("must be at least 32 bytes"))
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("jwt ttl", fmt.Errorf("%s is not positive", ttl))
	}
	if now == nil {
		now = time.Now
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: now}, nil
}

func (j *JWTIssuer) Issue(principal user.Principal) (string, time.Time, error) {
	issuedAt := j.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(j.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: principal.Email.String(),
		Role:  principal.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   principal.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies the signature and expiry and rebuilds the principal.
func (j *JWTIssuer) Parse(raw string) (user.Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return user.Principal{}, errs.NewAccessDeniedErrorWithCause("token", err)
	}

	userID, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return user.Principal{}, ErrInvalidToken
	}
	email, err := kernel.NewEmail(c.Email)
	if err != nil {
		return user.Principal{}, ErrInvalidToken
	}
	role, err := user.ParseRole(c.Role)
	if err != nil {
		return user.Principal{}, ErrInvalidToken
	}

	return user.NewPrincipal(userID, email, role)
}
