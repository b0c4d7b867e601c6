package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/notification"
	"shopsecure/internal/core/domain/model/order"
	"shopsecure/internal/core/ports"
)

// DeliveryStatus tells the caller whether the passcode reached the customer.
type DeliveryStatus string

const (
	// DeliverySent means the notifier accepted the message.
	DeliverySent DeliveryStatus = "sent"

	// DeliveryIssuedUndelivered means the passcode is valid but the message failed
	// and was queued for retry.
	DeliveryIssuedUndelivered DeliveryStatus = "issued_undelivered"
)

const passcodeSubject = "Security OTP - Delivery"

type IssuePasscodeResult struct {
	OrderCode kernel.OrderCode
	ExpiresAt time.Time
	Delivery  DeliveryStatus
}

// IssuePasscodeCommandHandler issues a passcode and notifies the order owner.
//
// The passcode is committed before the message is sent, so a notification
// failure never invalidates an issued code. Failed messages go to the outbox and
// are retried until the code expires.
type IssuePasscodeCommandHandler struct {
	uowFactory PasscodeUoWFactory
	generator  ports.PasscodeGenerator
	notifier   ports.Notifier
	clock      ports.Clock
	policy     order.PasscodePolicy
	logger     *slog.Logger
}

// NewIssuePasscodeCommandHandler wires the handler to its collaborators.
func NewIssuePasscodeCommandHandler(
	uowFactory PasscodeUoWFactory,
	generator ports.PasscodeGenerator,
	notifier ports.Notifier,
	clock ports.Clock,
	policy order.PasscodePolicy,
	logger *slog.Logger,
) IssuePasscodeCommandHandler {
	return IssuePasscodeCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		notifier:   notifier,
		clock:      clock,
		policy:     policy,
		logger:     logger.With("component", "issue_passcode_handler"),
	}
}

// Handle issues a fresh passcode for the caller's order and mails it.
//
// The passcode is committed before the message is sent, so a mail failure never
// loses the code: the message is queued in the outbox and the result reports
// DeliveryIssuedUndelivered.
//
// Parameters:
//   - ctx: request context
//   - cmd: the caller and an optional order code
//
// Returns:
//   - the order code, expiry and delivery outcome
//   - order.ErrNoPendingOrder when the caller has no matching pending order
func (h *IssuePasscodeCommandHandler) Handle(ctx context.Context, cmd IssuePasscodeCommand) (IssuePasscodeResult, error) {
	if err := cmd.Validate(); err != nil {
		return IssuePasscodeResult{}, err
	}

	code, err := h.generator.Generate()
	if err != nil {
		return IssuePasscodeResult{}, err
	}
	now := h.clock.Now()

	o, recipient, err := h.issue(ctx, cmd, code, now)
	if err != nil {
		return IssuePasscodeResult{}, err
	}

	result := IssuePasscodeResult{
		OrderCode: o.Code(),
		ExpiresAt: o.Passcode().ExpiresAt(h.policy),
		Delivery:  DeliverySent,
	}

	subject, body := passcodeMessage(code, h.policy)
	if sendErr := h.notifier.Send(ctx, recipient, subject, body); sendErr != nil {
		h.logger.WarnContext(ctx, "passcode issued but not delivered",
			"order_code", o.Code().String(), "error", sendErr)
		h.enqueue(ctx, o, recipient, subject, body, now, sendErr)
		result.Delivery = DeliveryIssuedUndelivered
	}

	return result, nil
}

func (h *IssuePasscodeCommandHandler) issue(
	ctx context.Context,
	cmd IssuePasscodeCommand,
	code string,
	now time.Time,
) (*order.Order, kernel.Email, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, kernel.Email{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := lockTargetOrder(ctx, orders, cmd.UserID(), cmd.OrderCode())
	if err != nil {
		return nil, kernel.Email{}, err
	}

	if err = o.IssuePasscode(code, now); err != nil {
		return nil, kernel.Email{}, err
	}

	owner, err := uow.UserRepository().Get(ctx, o.UserID())
	if err != nil {
		return nil, kernel.Email{}, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, kernel.Email{}, err
	}

	if err = h.supersedeQueued(ctx, uow.NotificationRepository(), o.ID()); err != nil {
		return nil, kernel.Email{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, kernel.Email{}, err
	}

	return o, owner.Email(), nil
}

// supersedeQueued retires queued messages carrying an older passcode.
func (h *IssuePasscodeCommandHandler) supersedeQueued(
	ctx context.Context,
	repo ports.NotificationRepository,
	orderID kernel.UUID,
) error {
	queued, err := repo.GetPendingForOrder(ctx, orderID)
	if err != nil {
		return err
	}
	for _, n := range queued {
		if err = n.Supersede(); err != nil {
			return err
		}
		if err = repo.Update(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// enqueue writes the undelivered message to the outbox. Failures are logged only:
// the passcode itself is already committed.
func (h *IssuePasscodeCommandHandler) enqueue(
	ctx context.Context,
	o *order.Order,
	recipient kernel.Email,
	subject, body string,
	now time.Time,
	sendErr error,
) {
	n, err := notification.NewUndeliveredNotification(
		kernel.NewUUID(), o.ID(), recipient, subject, body, sendErr, now, o.Passcode().ExpiresAt(h.policy))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build outbox entry",
			"order_id", o.ID().String(), "error", err)
		return
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to queue passcode message", "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.NotificationRepository().Add(ctx, n); err != nil {
		h.logger.ErrorContext(ctx, "failed to queue passcode message", "error", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to queue passcode message", "error", err)
	}
}

func passcodeMessage(code string, policy order.PasscodePolicy) (string, string) {
	body := fmt.Sprintf("Your security OTP is: %s\n\nIt expires in %s. Share it only with the courier handing over your order.",
		code, policy.Expiry())
	return passcodeSubject, body
}
