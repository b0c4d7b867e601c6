package services

import (
	"fmt"
	"math"

	"shopsecure/internal/core/domain/model/returns"
	"shopsecure/internal/pkg/errs"
)

const (
	DefaultAcceptBelow = 30.0
	DefaultRejectAbove = 70.0
)

// RiskPolicy holds the decision thresholds on the risk score.
type RiskPolicy struct {
	acceptBelow float64
	rejectAbove float64
}

// NewRiskPolicy requires 0 <= acceptBelow <= rejectAbove <= 100.
func NewRiskPolicy(acceptBelow, rejectAbove float64) (RiskPolicy, error) {
	if math.IsNaN(acceptBelow) || acceptBelow < 0 || acceptBelow > 100 {
		return RiskPolicy{}, errs.NewValueIsOutOfRangeError("accept below", acceptBelow, 0, 100)
	}
	if math.IsNaN(rejectAbove) || rejectAbove < acceptBelow || rejectAbove > 100 {
		return RiskPolicy{}, errs.NewValueIsOutOfRangeError("reject above", rejectAbove, acceptBelow, 100)
	}
	return RiskPolicy{acceptBelow: acceptBelow, rejectAbove: rejectAbove}, nil
}

// DefaultRiskPolicy accepts below a risk of 30 and rejects above 70.
func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{acceptBelow: DefaultAcceptBelow, rejectAbove: DefaultRejectAbove}
}

// AcceptBelow returns the risk under which a return is accepted.
func (p RiskPolicy) AcceptBelow() float64 {
	return p.acceptBelow
}

// RejectAbove returns the risk over which a return is rejected.
func (p RiskPolicy) RejectAbove() float64 {
	return p.rejectAbove
}

// Assessment is the outcome of classifying one similarity score.
type Assessment struct {
	Similarity float64
	RiskScore  float64
	Decision   returns.Decision
	Severity   returns.Severity
}

// RiskClassifier maps similarity to a decision:
//
//	risk = 100 - similarity
//	risk <  acceptBelow               -> ACCEPTED
//	risk >  rejectAbove               -> REJECTED
//	acceptBelow <= risk <= rejectAbove -> PENDING_REVIEW
type RiskClassifier struct {
	policy RiskPolicy
}

// NewRiskClassifier returns a classifier applying policy.
func NewRiskClassifier(policy RiskPolicy) RiskClassifier {
	return RiskClassifier{policy: policy}
}

// Classify returns a ValueIsOutOfRange error for similarity outside [0, 100].
func (c RiskClassifier) Classify(similarity float64) (Assessment, error) {
	if err := returns.ValidateScore("similarity", similarity); err != nil {
		return Assessment{}, err
	}

	risk := 100 - similarity

	var decision returns.Decision
	switch {
	case risk < c.policy.acceptBelow:
		decision = returns.DecisionAccepted
	case risk > c.policy.rejectAbove:
		decision = returns.DecisionRejected
	default:
		decision = returns.DecisionPendingReview
	}

	return Assessment{
		Similarity: similarity,
		RiskScore:  risk,
		Decision:   decision,
		Severity:   decision.Severity(),
	}, nil
}

func (a Assessment) String() string {
	return fmt.Sprintf("similarity=%.2f risk=%.2f decision=%s severity=%s",
		a.Similarity, a.RiskScore, a.Decision, a.Severity)
}
