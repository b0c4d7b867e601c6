package commands

import (
	"context"
	"log/slog"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/notification"
	"shopsecure/internal/core/ports"
)

// ClaimLease is how long a claimed entry is hidden from other workers while
// its message is sent. It outlasts the SMTP timeout.
const ClaimLease = time.Minute

// RetryNotificationsResult counts what one run did with the claimed batch.
// Errors counts entries whose outcome could not be stored; they become
// claimable again once ClaimLease runs out.
type RetryNotificationsResult struct {
	Delivered int
	Failed    int
	Abandoned int
	Errors    int
}

// RetryNotificationsCommandHandler drains the notification outbox.
//
// A run has two phases. First a short transaction locks a batch with SKIP
// LOCKED, abandons expired entries and claims the rest for ClaimLease. Then
// each claimed message is sent outside any transaction and its outcome is
// stored in a unit of work of its own, so one failed write never rolls back
// the record of a message that already went out.
type RetryNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
	logger     *slog.Logger
}

// NewRetryNotificationsCommandHandler wires the handler to its collaborators.
func NewRetryNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	logger *slog.Logger,
) RetryNotificationsCommandHandler {
	return RetryNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		logger:     logger.With("component", "retry_notifications_handler"),
	}
}

// Handle runs one retry pass over at most cmd.BatchSize() entries.
//
// Parameters:
//   - ctx: cancels the claim transaction and in-flight sends
//   - cmd: the validated batch size
//
// Returns the per-outcome counters. An error is returned only when the batch
// could not be claimed; per-entry failures are logged and counted.
func (h *RetryNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd RetryNotificationsCommand,
) (RetryNotificationsResult, error) {
	if err := cmd.Validate(); err != nil {
		return RetryNotificationsResult{}, err
	}

	var result RetryNotificationsResult
	claimed, abandoned, err := h.claim(ctx, cmd.BatchSize(), h.clock.Now())
	if err != nil {
		return RetryNotificationsResult{}, err
	}
	result.Abandoned = abandoned

	for _, n := range claimed {
		sendErr := h.notifier.Send(ctx, n.Recipient(), n.Subject(), n.Body())
		if err = h.record(ctx, n.ID(), sendErr); err != nil {
			h.logger.ErrorContext(ctx, "failed to store notification outcome",
				"notification_id", n.ID().String(), "sent", sendErr == nil, "error", err)
			result.Errors++
			continue
		}

		if sendErr != nil {
			h.logger.WarnContext(ctx, "notification retry failed",
				"notification_id", n.ID().String(), "attempts", n.Attempts()+1, "error", sendErr)
			result.Failed++
			continue
		}
		result.Delivered++
	}

	return result, nil
}

// claim locks a batch, abandons what expired and claims the rest.
func (h *RetryNotificationsCommandHandler) claim(
	ctx context.Context,
	limit int,
	now time.Time,
) ([]*notification.Notification, int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	batch, err := repo.GetClaimableForUpdate(ctx, now, limit)
	if err != nil {
		return nil, 0, err
	}

	claimed := make([]*notification.Notification, 0, len(batch))
	abandoned := 0
	for _, n := range batch {
		if n.IsExpired(now) {
			err = n.Abandon()
			abandoned++
		} else {
			err = n.Claim(now, ClaimLease)
			claimed = append(claimed, n)
		}
		if err != nil {
			return nil, 0, err
		}
		if err = repo.Update(ctx, n); err != nil {
			return nil, 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, 0, err
	}

	return claimed, abandoned, nil
}

// record stores the outcome of one send. An entry superseded while its
// message was in flight is left as it is.
func (h *RetryNotificationsCommandHandler) record(ctx context.Context, id kernel.UUID, sendErr error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	n, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if n.Status() != notification.StatusPending {
		h.logger.InfoContext(ctx, "notification closed while sending",
			"notification_id", id.String(), "status", n.Status().String())
		return nil
	}

	if sendErr != nil {
		err = n.RecordFailure(sendErr)
	} else {
		err = n.MarkDelivered()
	}
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, n); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
