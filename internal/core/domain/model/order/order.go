package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
)

// DefaultPaymentType is used when an order is placed without a payment tag.
const DefaultPaymentType = "COD"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrNoPendingOrder is returned when a passcode is requested or verified but the
	// customer has no order awaiting delivery.
	ErrNoPendingOrder = errs.NewObjectNotFoundError("order", "pending order")

	// ErrOrderNotPending is returned when a passcode operation targets an order that
	// already left the Pending status.
	ErrOrderNotPending = errs.NewStateConflictError("order is not pending")

	// ErrNoActivePasscode is returned when verification is attempted but no code
	// has been issued for the order.
	ErrNoActivePasscode = errs.NewStateConflictError("no active passcode for order")

	// ErrPasscodeExpired is returned when the code is submitted after the expiry window.
	ErrPasscodeExpired = errs.NewExpiredError("passcode has expired")

	// ErrPasscodeAttemptsExhausted is returned once the attempt limit is reached.
	ErrPasscodeAttemptsExhausted = errs.NewRateLimitedError("passcode attempts exhausted")

	// ErrIncorrectPasscode is returned for a wrong code while attempts remain.
	ErrIncorrectPasscode = errs.NewValueIsInvalidError("passcode is incorrect")

	// ErrInvalidReturnState is returned when a return targets an order that is not Delivered.
	ErrInvalidReturnState = errs.NewStateConflictError("valid delivered order required")
)

// Order is the aggregate root for a customer order.
//
// Order follows these invariants:
//   - Identity, external code and owner are always set
//   - Price is positive, product name and address are non-empty
//   - The passcode is only issued and verified while the status is Pending
//   - A Delivered order carries no outstanding passcode
//
// Status and passcode are private and only change through IssuePasscode and
// VerifyPasscode.
type Order struct {
	id          kernel.UUID
	code        kernel.OrderCode
	userID      kernel.UUID
	productName string
	price       float64
	address     string
	paymentType string
	status      Status
	passcode    Passcode
	createdAt   time.Time

	isConstructed bool
}

// NewOrder places a new Pending order with no passcode.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderCode(), userID,
//	    "Wireless headphones", 2499, "12 Harbour Road", "", time.Now())
func NewOrder(
	id kernel.UUID,
	code kernel.OrderCode,
	userID kernel.UUID,
	productName string,
	price float64,
	address string,
	paymentType string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		passcode:      NewNoPasscode(),
		isConstructed: true,
	}

	if strings.TrimSpace(paymentType) == "" {
		paymentType = DefaultPaymentType
	}

	if err := errors.Join(
		o.setIdentity(id, code, userID),
		o.setProductName(productName),
		o.setPrice(price),
		o.setAddress(address),
		o.setPaymentType(paymentType),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	code kernel.OrderCode,
	userID kernel.UUID,
	productName string,
	price float64,
	address string,
	paymentType string,
	status Status,
	passcode Passcode,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setIdentity(id, code, userID),
		o.setProductName(productName),
		o.setPrice(price),
		o.setAddress(address),
		o.setPaymentType(paymentType),
		o.setCreatedAt(createdAt),
		o.setStatus(status, passcode),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's internal identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Code returns the 8-character external order code shown to customers.
func (o *Order) Code() kernel.OrderCode {
	return o.code
}

// UserID returns the identifier of the customer who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// ProductName returns the ordered product's display name.
func (o *Order) ProductName() string {
	return o.productName
}

// Price returns the order total.
func (o *Order) Price() float64 {
	return o.price
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// PaymentType returns the payment method, COD unless set otherwise.
func (o *Order) PaymentType() string {
	return o.paymentType
}

// Status returns the delivery status.
func (o *Order) Status() Status {
	return o.status
}

// Passcode returns the current delivery passcode. It is in the none state until one is issued.
func (o *Order) Passcode() Passcode {
	return o.passcode
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.userID.IsEqual(userID)
}

// PasscodeState evaluates the passcode state at now.
func (o *Order) PasscodeState(now time.Time, policy PasscodePolicy) PasscodeState {
	return o.passcode.State(now, policy)
}

// IssuePasscode stores a freshly generated code issued at now.
//
// Re-issuing while a code is outstanding overwrites it and resets the attempt
// counter; attempts do not accumulate across issuances.
//
// Returns ErrOrderNotPending unless the order is Pending.
func (o *Order) IssuePasscode(code string, now time.Time) error {
	if o.status != Pending {
		return ErrOrderNotPending
	}

	p, err := NewActivePasscode(code, now)
	if err != nil {
		return err
	}

	o.passcode = p
	return nil
}

// VerifyPasscode checks submitted against the outstanding code at now.
//
// Checks run in this order and the first failure wins:
//  1. the order is Pending, else ErrOrderNotPending
//  2. a code is outstanding, else ErrNoActivePasscode
//  3. now is within the expiry window, else ErrPasscodeExpired
//  4. the attempt counter is below the limit, else ErrPasscodeAttemptsExhausted
//  5. the value matches, else the counter is incremented and ErrIncorrectPasscode is
//     returned, or ErrPasscodeAttemptsExhausted if this miss used the last attempt
//
// On success the code is consumed and the order becomes Delivered.
// A wrong value mutates the aggregate, so callers persist it even when an error is returned.
func (o *Order) VerifyPasscode(submitted string, now time.Time, policy PasscodePolicy) error {
	if o.status != Pending {
		return ErrOrderNotPending
	}

	switch o.passcode.State(now, policy) {
	case PasscodeActive:
	case PasscodeExpired:
		return ErrPasscodeExpired
	case PasscodeLocked:
		return ErrPasscodeAttemptsExhausted
	default:
		return ErrNoActivePasscode
	}

	if !o.passcode.matches(submitted) {
		o.passcode.attempts++
		if o.passcode.attempts >= policy.maxAttempts {
			return ErrPasscodeAttemptsExhausted
		}
		return ErrIncorrectPasscode
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.passcode = Passcode{state: PasscodeVerified, issuedAt: o.passcode.issuedAt}
	return nil
}

// ValidateReturnable returns ErrInvalidReturnState unless the order is Delivered.
func (o *Order) ValidateReturnable() error {
	if o.status != Delivered {
		return ErrInvalidReturnState
	}
	return nil
}

func (o *Order) setIdentity(id kernel.UUID, code kernel.OrderCode, userID kernel.UUID) error {
	if err := errors.Join(id.Validate(), code.Validate(), userID.Validate()); err != nil {
		return err
	}
	o.id = id
	o.code = code
	o.userID = userID
	return nil
}

func (o *Order) setProductName(productName string) error {
	trimmed := strings.TrimSpace(productName)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	o.productName = trimmed
	return nil
}

func (o *Order) setPrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%v is not greater than 0", price))
	}
	o.price = price
	return nil
}

func (o *Order) setAddress(address string) error {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = trimmed
	return nil
}

func (o *Order) setPaymentType(paymentType string) error {
	trimmed := strings.ToUpper(strings.TrimSpace(paymentType))
	if trimmed == "" {
		return errs.NewValueIsRequiredError("payment type")
	}
	o.paymentType = trimmed
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}

// setStatus enforces that Delivered orders carry no outstanding passcode.
func (o *Order) setStatus(status Status, passcode Passcode) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == Delivered && passcode.state == PasscodeActive {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", errors.New("a delivered order cannot have an active passcode"))
	}
	if status == Pending && passcode.state == PasscodeVerified {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", errors.New("a pending order cannot have a verified passcode"))
	}
	if !passcode.state.isStored() {
		return errs.NewValueIsRequiredError("passcode")
	}
	o.status = status
	o.passcode = passcode
	return nil
}
