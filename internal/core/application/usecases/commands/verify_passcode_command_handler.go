package commands

import (
	"context"
	"errors"
	"log/slog"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/order"
	"shopsecure/internal/core/ports"
)

type VerifyPasscodeResult struct {
	OrderCode kernel.OrderCode
	Status    order.Status
}

// VerifyPasscodeCommandHandler confirms delivery of an order.
//
// The order row stays locked from read to commit, so two concurrent
// verifications of the same order are serialized: at most one succeeds and no
// failed attempt is lost.
type VerifyPasscodeCommandHandler struct {
	uowFactory PasscodeUoWFactory
	clock      ports.Clock
	policy     order.PasscodePolicy
	logger     *slog.Logger
}

// NewVerifyPasscodeCommandHandler wires the handler to its collaborators.
func NewVerifyPasscodeCommandHandler(
	uowFactory PasscodeUoWFactory,
	clock ports.Clock,
	policy order.PasscodePolicy,
	logger *slog.Logger,
) VerifyPasscodeCommandHandler {
	return VerifyPasscodeCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     policy,
		logger:     logger.With("component", "verify_passcode_handler"),
	}
}

// Handle checks a passcode and marks the order DELIVERED when it matches.
//
// Expiry is checked first, then the attempt limit, then the code itself. A wrong
// code still commits the incremented attempt counter.
//
// Parameters:
//   - ctx: request context
//   - cmd: the caller, an optional order code and the guessed passcode
//
// Returns:
//   - the order code and its new status on success
//   - order.ErrPasscodeExpired, order.ErrPasscodeAttemptsExhausted or
//     order.ErrIncorrectPasscode for a rejected passcode
func (h *VerifyPasscodeCommandHandler) Handle(ctx context.Context, cmd VerifyPasscodeCommand) (VerifyPasscodeResult, error) {
	if err := cmd.Validate(); err != nil {
		return VerifyPasscodeResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return VerifyPasscodeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := lockTargetOrder(ctx, orders, cmd.UserID(), cmd.OrderCode())
	if err != nil {
		return VerifyPasscodeResult{}, err
	}

	verifyErr := o.VerifyPasscode(cmd.Passcode(), h.clock.Now(), h.policy)
	if !changesOrder(verifyErr) {
		return VerifyPasscodeResult{}, verifyErr
	}

	if err = orders.Update(ctx, o); err != nil {
		return VerifyPasscodeResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return VerifyPasscodeResult{}, err
	}

	if verifyErr != nil {
		h.logger.InfoContext(ctx, "passcode rejected",
			"order_code", o.Code().String(), "attempts", o.Passcode().Attempts(), "error", verifyErr)
		return VerifyPasscodeResult{}, verifyErr
	}

	h.logger.InfoContext(ctx, "order delivered", "order_code", o.Code().String())
	return VerifyPasscodeResult{OrderCode: o.Code(), Status: o.Status()}, nil
}

// changesOrder reports whether the verification outcome mutated the order:
// success delivers it and a wrong value consumes an attempt.
func changesOrder(verifyErr error) bool {
	if verifyErr == nil || errors.Is(verifyErr, order.ErrIncorrectPasscode) {
		return true
	}
	// Exhausted is returned both for the miss that used the last attempt and for
	// an already locked code; persisting the unchanged counter is harmless.
	return errors.Is(verifyErr, order.ErrPasscodeAttemptsExhausted)
}
