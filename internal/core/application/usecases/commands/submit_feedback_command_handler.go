package commands

import (
	"context"
	"errors"
	"log/slog"

	"shopsecure/internal/core/domain/model/feedback"
	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/ports"
	"shopsecure/internal/pkg/errs"
)

// SubmitFeedbackCommandHandler stores feedback for the customer's first
// delivered order. Customers without a delivered order cannot leave feedback.
type SubmitFeedbackCommandHandler struct {
	uowFactory FeedbackUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

// NewSubmitFeedbackCommandHandler wires the handler to its unit of work.
func NewSubmitFeedbackCommandHandler(
	uowFactory FeedbackUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) SubmitFeedbackCommandHandler {
	return SubmitFeedbackCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "submit_feedback_handler"),
	}
}

// Handle records a rating against the customer's first delivered order.
//
// Returns the new feedback id, an ObjectNotFound error for an unknown email or
// feedback.ErrNoDeliveredOrder when nothing was delivered to the customer yet.
func (h *SubmitFeedbackCommandHandler) Handle(ctx context.Context, cmd SubmitFeedbackCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	u, err := uow.UserRepository().GetByEmail(ctx, cmd.Email())
	if err != nil {
		return kernel.UUID{}, err
	}

	delivered, err := uow.OrderRepository().GetFirstDeliveredForUser(ctx, u.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, feedback.ErrNoDeliveredOrder
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	f, err := feedback.NewFeedback(
		kernel.NewUUID(), u.ID(), delivered.Code(), u.Email(), cmd.Rating(), cmd.Comment(), h.clock.Now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.FeedbackRepository().Add(ctx, f); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return f.ID(), nil
}
