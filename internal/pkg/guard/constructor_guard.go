// Package guard provides the ConstructorGuard used by commands and queries to
// reject zero values that bypassed their validating constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as created through its constructor.
// The zero value is "not constructed".
//
// Example:
//
//	type IssuePasscodeCommand struct {
//	    userID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c IssuePasscodeCommand) Validate() error {
//	    return c.guard.Validate(ErrIssuePasscodeCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guarded value was not built by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
