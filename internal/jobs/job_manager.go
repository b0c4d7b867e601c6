package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	notificationRetryJob *NotificationRetryJob
}

// NewJobManager builds the manager for every background job.
func NewJobManager(
	retrier NotificationRetrier,
	retrySchedule string,
	retryBatchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationRetryJob: NewNotificationRetryJob(retrier, retrySchedule, retryBatchSize, logger),
	}
}

// StartAll returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification retry job: %w", err)
	}
	return nil
}

// StopAll stops every job and waits for running ticks to finish.
func (jm *JobManager) StopAll() {
	jm.notificationRetryJob.Stop()
}
