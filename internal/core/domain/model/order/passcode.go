package order

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"shopsecure/internal/pkg/errs"
)

const (
	// PasscodeLength is the number of decimal digits in a passcode.
	PasscodeLength = 6

	// DefaultPasscodeExpiry is how long an issued passcode stays valid.
	DefaultPasscodeExpiry = 2 * time.Minute

	// DefaultPasscodeMaxAttempts is the number of wrong submissions that lock a passcode.
	DefaultPasscodeMaxAttempts = 3

	passcodeMin = 100000
	passcodeMax = 999999
)

var passcodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// PasscodeState is the explicit state of an order's passcode.
//
// State machine:
//
//	NoPasscode ──issue──> Active ──verify ok──> Verified
//	                        │  ▲
//	          time elapses  │  │ re-issue (from Active, Expired or Locked)
//	                        ▼  │
//	                  Expired / Locked
//
// Only NoPasscode, Active and Verified are stored. Expired and Locked are
// evaluated against the clock and the PasscodePolicy whenever the state is read,
// there is no background sweep.
type PasscodeState int

const (
	PasscodeUnknown PasscodeState = iota
	NoPasscode
	PasscodeActive
	PasscodeExpired
	PasscodeLocked
	PasscodeVerified
)

func (s PasscodeState) String() string {
	switch s {
	case NoPasscode:
		return "NO_OTP"
	case PasscodeActive:
		return "OTP_ACTIVE"
	case PasscodeExpired:
		return "OTP_EXPIRED"
	case PasscodeLocked:
		return "OTP_LOCKED"
	case PasscodeVerified:
		return "VERIFIED"
	default:
		return "UNKNOWN"
	}
}

// isStored reports whether the state may be persisted as is.
func (s PasscodeState) isStored() bool {
	return s == NoPasscode || s == PasscodeActive || s == PasscodeVerified
}

// PasscodePolicy holds the verification limits. It is supplied by configuration
// and passed to the aggregate on every verification.
type PasscodePolicy struct {
	expiry      time.Duration
	maxAttempts int
}

// NewPasscodePolicy validates and builds a policy.
func NewPasscodePolicy(expiry time.Duration, maxAttempts int) (PasscodePolicy, error) {
	if expiry <= 0 {
		return PasscodePolicy{}, errs.NewValueIsInvalidErrorWithCause(
			"passcode expiry", fmt.Errorf("%s is not positive", expiry))
	}
	if maxAttempts <= 0 {
		return PasscodePolicy{}, errs.NewValueIsInvalidErrorWithCause(
			"passcode max attempts", fmt.Errorf("%d is not positive", maxAttempts))
	}
	return PasscodePolicy{expiry: expiry, maxAttempts: maxAttempts}, nil
}

// DefaultPasscodePolicy returns the two minute, three attempt policy.
func DefaultPasscodePolicy() PasscodePolicy {
	return PasscodePolicy{expiry: DefaultPasscodeExpiry, maxAttempts: DefaultPasscodeMaxAttempts}
}

// Expiry returns how long an issued passcode stays valid.
func (p PasscodePolicy) Expiry() time.Duration {
	return p.expiry
}

// MaxAttempts returns the number of wrong guesses that lock a passcode.
func (p PasscodePolicy) MaxAttempts() int {
	return p.maxAttempts
}

// Passcode is the one-time passcode bound to a single order.
// It is a value object; transitions return a new Passcode.
type Passcode struct {
	state    PasscodeState
	code     string
	issuedAt time.Time
	attempts int
}

// NewNoPasscode returns the initial state: no code outstanding.
func NewNoPasscode() Passcode {
	return Passcode{state: NoPasscode}
}

// NewActivePasscode issues code at issuedAt with a fresh attempt counter.
func NewActivePasscode(code string, issuedAt time.Time) (Passcode, error) {
	if !passcodePattern.MatchString(code) {
		return Passcode{}, errs.NewValueIsInvalidErrorWithCause(
			"passcode", fmt.Errorf("must be %d digits", PasscodeLength))
	}
	if issuedAt.IsZero() {
		return Passcode{}, errs.NewValueIsRequiredError("passcode issue time")
	}
	return Passcode{state: PasscodeActive, code: code, issuedAt: issuedAt}, nil
}

// RestorePasscode rebuilds a stored passcode and rejects combinations that
// cannot be produced by the state machine.
func RestorePasscode(state PasscodeState, code string, issuedAt time.Time, attempts int) (Passcode, error) {
	if !state.isStored() {
		return Passcode{}, errs.NewValueIsInvalidErrorWithCause(
			"passcode state", fmt.Errorf("%s cannot be stored", state))
	}
	if attempts < 0 {
		return Passcode{}, errs.NewValueIsInvalidErrorWithCause(
			"passcode attempts", fmt.Errorf("%d is negative", attempts))
	}

	if state != PasscodeActive {
		if code != "" {
			return Passcode{}, errs.NewValueIsInvalidErrorWithCause(
				"passcode", fmt.Errorf("state %s cannot carry a code", state))
		}
		return Passcode{state: state, issuedAt: issuedAt}, nil
	}

	p, err := NewActivePasscode(code, issuedAt)
	if err != nil {
		return Passcode{}, err
	}
	p.attempts = attempts
	return p, nil
}

// StoredState returns the persisted state (NoPasscode, Active or Verified).
func (p Passcode) StoredState() PasscodeState {
	return p.state
}

// State evaluates the effective state at now under policy.
// Expiry is evaluated before the attempt limit.
func (p Passcode) State(now time.Time, policy PasscodePolicy) PasscodeState {
	if p.state != PasscodeActive {
		return p.state
	}
	if now.Sub(p.issuedAt) > policy.expiry {
		return PasscodeExpired
	}
	if p.attempts >= policy.maxAttempts {
		return PasscodeLocked
	}
	return PasscodeActive
}

// Code returns the outstanding code, or "" when there is none.
func (p Passcode) Code() string {
	return p.code
}

// IssuedAt returns the issue time of the last code; zero if none was ever issued.
func (p Passcode) IssuedAt() time.Time {
	return p.issuedAt
}

// ExpiresAt returns when the outstanding code stops being accepted.
func (p Passcode) ExpiresAt(policy PasscodePolicy) time.Time {
	return p.issuedAt.Add(policy.expiry)
}

// Attempts returns the number of wrong submissions against the current code.
func (p Passcode) Attempts() int {
	return p.attempts
}

// matches compares in constant time.
func (p Passcode) matches(submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(p.code), []byte(submitted)) == 1
}

// GeneratePasscode returns a uniformly random six-digit code in [100000, 999999].
func GeneratePasscode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(passcodeMax-passcodeMin+1))
	if err != nil {
		return "", fmt.Errorf("generate passcode: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+passcodeMin), nil
}
