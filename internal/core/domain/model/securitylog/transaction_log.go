// Package securitylog provides the append-only audit record written for every
// return risk evaluation.
package securitylog

import (
	"errors"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/returns"
)

var ErrTransactionLogIsNotConstructed = errors.New(
	"TransactionLog must be created via NewTransactionLog constructor",
)

// TransactionLog audits one risk evaluation. It is created exactly once for each
// ReturnRequest and copies the scores from it, so both records always agree.
type TransactionLog struct {
	id              kernel.UUID
	returnRequestID kernel.UUID
	userID          kernel.UUID
	email           kernel.Email
	orderCode       kernel.OrderCode
	similarity      float64
	riskScore       float64
	severity        returns.Severity
	decision        returns.Decision
	createdAt       time.Time

	isConstructed bool
}

// NewTransactionLog derives the audit entry for a return. userID identifies the
// customer the evaluated order belongs to.
func NewTransactionLog(id kernel.UUID, userID kernel.UUID, rr *returns.ReturnRequest) (*TransactionLog, error) {
	if err := rr.Validate(); err != nil {
		return nil, err
	}
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}

	return &TransactionLog{
		id:              id,
		returnRequestID: rr.ID(),
		userID:          userID,
		email:           rr.RequesterEmail(),
		orderCode:       rr.OrderCode(),
		similarity:      rr.Similarity(),
		riskScore:       rr.RiskScore(),
		severity:        rr.Severity(),
		decision:        rr.Decision(),
		createdAt:       rr.CreatedAt(),
		isConstructed:   true,
	}, nil
}

// Validate ensures the log entry was built through NewTransactionLog.
func (l *TransactionLog) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrTransactionLogIsNotConstructed
	}
	return nil
}

// ID returns the log entry's unique identifier.
func (l *TransactionLog) ID() kernel.UUID {
	return l.id
}

// ReturnRequestID returns the return request this entry audits.
func (l *TransactionLog) ReturnRequestID() kernel.UUID {
	return l.returnRequestID
}

// UserID returns the customer the returned order belongs to.
func (l *TransactionLog) UserID() kernel.UUID {
	return l.userID
}

// Email returns the requester's address.
func (l *TransactionLog) Email() kernel.Email {
	return l.email
}

// OrderCode returns the external code of the returned order.
func (l *TransactionLog) OrderCode() kernel.OrderCode {
	return l.orderCode
}

// Similarity returns the image match score that drove the decision.
func (l *TransactionLog) Similarity() float64 {
	return l.similarity
}

// RiskScore returns 100 minus the similarity.
func (l *TransactionLog) RiskScore() float64 {
	return l.riskScore
}

// Severity returns the alert level shown on the dashboard.
func (l *TransactionLog) Severity() returns.Severity {
	return l.severity
}

// Decision returns the final status of the return.
func (l *TransactionLog) Decision() returns.Decision {
	return l.decision
}

// CreatedAt returns when the decision was logged.
func (l *TransactionLog) CreatedAt() time.Time {
	return l.createdAt
}
