package user

import (
	"fmt"

	"shopsecure/internal/pkg/errs"
)

// Role controls which operations a Principal may perform.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole converts the stored role name back into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}
