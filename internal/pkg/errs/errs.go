package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrStateConflict     = errors.New("state conflict")
	ErrRateLimited       = errors.New("rate limited")
	ErrExpired           = errors.New("expired")
	ErrAccessDenied      = errors.New("access denied")
)

// ObjectNotFoundError reports that an object identified by ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %v", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that is present but malformed.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return format(ErrValueIsInvalid, e.ParamName, e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside the inclusive [Min, Max] range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return format(ErrValueIsRequired, e.ParamName, e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// StateConflictError reports an operation that is not valid for the current
// lifecycle state of an object, e.g. verifying a passcode on a delivered order.
type StateConflictError struct {
	ParamName string
	Cause     error
}

func NewStateConflictError(paramName string) *StateConflictError {
	return &StateConflictError{ParamName: paramName}
}

func NewStateConflictErrorWithCause(paramName string, cause error) *StateConflictError {
	return &StateConflictError{ParamName: paramName, Cause: cause}
}

func (e *StateConflictError) Error() string {
	return format(ErrStateConflict, e.ParamName, e.Cause)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// RateLimitedError reports that the caller ran out of attempts or request budget.
type RateLimitedError struct {
	ParamName string
	Cause     error
}

func NewRateLimitedError(paramName string) *RateLimitedError {
	return &RateLimitedError{ParamName: paramName}
}

func NewRateLimitedErrorWithCause(paramName string, cause error) *RateLimitedError {
	return &RateLimitedError{ParamName: paramName, Cause: cause}
}

func (e *RateLimitedError) Error() string {
	return format(ErrRateLimited, e.ParamName, e.Cause)
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

// ExpiredError reports a time-bound value used after its validity window.
type ExpiredError struct {
	ParamName string
	Cause     error
}

func NewExpiredError(paramName string) *ExpiredError {
	return &ExpiredError{ParamName: paramName}
}

func NewExpiredErrorWithCause(paramName string, cause error) *ExpiredError {
	return &ExpiredError{ParamName: paramName, Cause: cause}
}

func (e *ExpiredError) Error() string {
	return format(ErrExpired, e.ParamName, e.Cause)
}

func (e *ExpiredError) Unwrap() error {
	return ErrExpired
}

// AccessDeniedError reports a caller that is not authenticated or not authorized.
type AccessDeniedError struct {
	ParamName string
	Cause     error
}

func NewAccessDeniedError(paramName string) *AccessDeniedError {
	return &AccessDeniedError{ParamName: paramName}
}

func NewAccessDeniedErrorWithCause(paramName string, cause error) *AccessDeniedError {
	return &AccessDeniedError{ParamName: paramName, Cause: cause}
}

func (e *AccessDeniedError) Error() string {
	return format(ErrAccessDenied, e.ParamName, e.Cause)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

func format(sentinel error, paramName string, cause error) string {
	if cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", sentinel, paramName, cause)
	}
	return fmt.Sprintf("%s: %s", sentinel, paramName)
}

// sanitize keeps user-provided values on a single log line.
func sanitize(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
