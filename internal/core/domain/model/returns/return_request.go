package returns

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
)

// MaxReasonLength bounds the free-text reason stored with a return.
const MaxReasonLength = 2000

var (
	// ErrReturnRequestIsNotConstructed is returned when a ReturnRequest was not created
	// through NewReturnRequest.
	ErrReturnRequestIsNotConstructed = errors.New("ReturnRequest must be created via NewReturnRequest constructor")

	// ErrReferenceImageMissing is returned when a return targets an order that has no
	// canonical reference image to compare against.
	ErrReferenceImageMissing = errs.NewStateConflictError("reference image for order is missing")
)

// ReturnRequest records one return submission together with the computed fraud
// assessment. All fields are set at construction.
type ReturnRequest struct {
	id             kernel.UUID
	orderID        kernel.UUID
	orderCode      kernel.OrderCode
	requesterEmail kernel.Email
	reason         string
	imageRef       string
	similarity     float64
	riskScore      float64
	decision       Decision
	createdAt      time.Time

	isConstructed bool
}

// NewReturnRequest builds a return record. riskScore must be the complement of
// similarity, both in [0, 100].
func NewReturnRequest(
	id kernel.UUID,
	orderID kernel.UUID,
	orderCode kernel.OrderCode,
	requesterEmail kernel.Email,
	reason string,
	imageRef string,
	similarity float64,
	riskScore float64,
	decision Decision,
	createdAt time.Time,
) (*ReturnRequest, error) {
	r := &ReturnRequest{isConstructed: true}

	if err := errors.Join(
		r.setIdentity(id, orderID, orderCode),
		r.setRequesterEmail(requesterEmail),
		r.setReason(reason),
		r.setImageRef(imageRef),
		r.setAssessment(similarity, riskScore, decision),
		r.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the ReturnRequest was built through NewReturnRequest.
func (r *ReturnRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnRequestIsNotConstructed
	}
	return nil
}

// ID returns the return request's unique identifier.
func (r *ReturnRequest) ID() kernel.UUID {
	return r.id
}

// OrderID returns the internal identifier of the returned order.
func (r *ReturnRequest) OrderID() kernel.UUID {
	return r.orderID
}

// OrderCode returns the external code the customer entered.
func (r *ReturnRequest) OrderCode() kernel.OrderCode {
	return r.orderCode
}

// RequesterEmail returns the address the return was filed under.
func (r *ReturnRequest) RequesterEmail() kernel.Email {
	return r.requesterEmail
}

// Reason returns the customer's stated reason.
func (r *ReturnRequest) Reason() string {
	return r.reason
}

// ImageRef returns the image store reference of the submitted photo.
func (r *ReturnRequest) ImageRef() string {
	return r.imageRef
}

// Similarity returns the 0-100 match against the reference image.
func (r *ReturnRequest) Similarity() float64 {
	return r.similarity
}

// RiskScore returns 100 minus the similarity.
func (r *ReturnRequest) RiskScore() float64 {
	return r.riskScore
}

// Decision returns the automated outcome.
func (r *ReturnRequest) Decision() Decision {
	return r.decision
}

// Severity returns CRITICAL for rejected returns and LOW otherwise.
func (r *ReturnRequest) Severity() Severity {
	return r.decision.Severity()
}

// CreatedAt returns when the return was submitted.
func (r *ReturnRequest) CreatedAt() time.Time {
	return r.createdAt
}

func (r *ReturnRequest) setIdentity(id, orderID kernel.UUID, orderCode kernel.OrderCode) error {
	if err := errors.Join(id.Validate(), orderID.Validate(), orderCode.Validate()); err != nil {
		return err
	}
	r.id = id
	r.orderID = orderID
	r.orderCode = orderCode
	return nil
}

func (r *ReturnRequest) setRequesterEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	r.requesterEmail = email
	return nil
}

func (r *ReturnRequest) setReason(reason string) error {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if len(trimmed) > MaxReasonLength {
		return errs.NewValueIsOutOfRangeError("reason length", len(trimmed), 1, MaxReasonLength)
	}
	r.reason = trimmed
	return nil
}

func (r *ReturnRequest) setImageRef(imageRef string) error {
	if strings.TrimSpace(imageRef) == "" {
		return errs.NewValueIsRequiredError("image reference")
	}
	r.imageRef = imageRef
	return nil
}

func (r *ReturnRequest) setAssessment(similarity, riskScore float64, decision Decision) error {
	if err := ValidateScore("similarity", similarity); err != nil {
		return err
	}
	if err := ValidateScore("risk score", riskScore); err != nil {
		return err
	}
	if math.Abs(similarity+riskScore-100) > 1e-6 {
		return errs.NewValueIsInvalidErrorWithCause("risk score",
			fmt.Errorf("%v is not the complement of similarity %v", riskScore, similarity))
	}
	if err := decision.Validate(); err != nil {
		return err
	}
	r.similarity = similarity
	r.riskScore = riskScore
	r.decision = decision
	return nil
}

func (r *ReturnRequest) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	r.createdAt = createdAt
	return nil
}

// ValidateScore checks that a similarity or risk value is a finite number in [0, 100].
func ValidateScore(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return errs.NewValueIsOutOfRangeError(name, v, 0, 100)
	}
	return nil
}
