package returns

import (
	"fmt"

	"shopsecure/internal/pkg/errs"
)

// Decision is the outcome of a return risk evaluation.
type Decision string

const (
	DecisionAccepted      Decision = "ACCEPTED"
	DecisionPendingReview Decision = "PENDING_REVIEW"
	DecisionRejected      Decision = "REJECTED"
)

// ParseDecision converts a persisted value back into a Decision.
func ParseDecision(s string) (Decision, error) {
	d := Decision(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (d Decision) Validate() error {
	switch d {
	case DecisionAccepted, DecisionPendingReview, DecisionRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("decision", fmt.Errorf("%q is not a known decision", string(d)))
	}
}

func (d Decision) String() string {
	return string(d)
}

// Severity returns the audit criticality of the decision: CRITICAL for
// rejections and LOW for everything else.
func (d Decision) Severity() Severity {
	if d == DecisionRejected {
		return SeverityCritical
	}
	return SeverityLow
}

// Severity tags audit log entries.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityCritical Severity = "CRITICAL"
)

// ParseSeverity converts a persisted value back into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityLow, SeverityCritical:
		return Severity(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("severity", fmt.Errorf("%q is not a known severity", s))
	}
}

func (s Severity) String() string {
	return string(s)
}
