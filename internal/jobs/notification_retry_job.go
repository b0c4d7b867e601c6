package jobs

import (
	"context"
	"log/slog"

	"shopsecure/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRetrySchedule runs the outbox retry every fifteen seconds.
const DefaultRetrySchedule = "*/15 * * * * *"

// NotificationRetrier drains one batch of the notification outbox.
type NotificationRetrier interface {
	Handle(ctx context.Context, cmd commands.RetryNotificationsCommand) (commands.RetryNotificationsResult, error)
}

// NotificationRetryJob redelivers passcode messages the first send could not deliver.
type NotificationRetryJob struct {
	handler   NotificationRetrier
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewNotificationRetryJob prepares a job that drains up to batchSize outbox
// entries on every tick of schedule, a six-field cron expression with seconds.
func NewNotificationRetryJob(
	handler NotificationRetrier,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *NotificationRetryJob {
	if schedule == "" {
		schedule = DefaultRetrySchedule
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultRetryBatchSize
	}
	return &NotificationRetryJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "notification_retry_job"),
	}
}

// Start registers the job with the cron scheduler and starts it.
func (j *NotificationRetryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification retry job started", "schedule", j.schedule)
	return nil
}

// Run handles a single batch. Start schedules it; tests call it directly.
func (j *NotificationRetryJob) Run() {
	ctx := context.Background()

	cmd, err := commands.NewRetryNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification retry job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification retry job failed", "error", err)
		return
	}

	if result.Delivered+result.Failed+result.Abandoned+result.Errors > 0 {
		j.logger.InfoContext(ctx, "Notification retry batch processed",
			"delivered", result.Delivered,
			"failed", result.Failed,
			"abandoned", result.Abandoned,
			"errors", result.Errors,
		)
	}
}

// Stop waits for a running batch to finish.
func (j *NotificationRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification retry job stopped")
}
