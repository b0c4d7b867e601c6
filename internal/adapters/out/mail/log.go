package mail

import (
	"context"
	"log/slog"

	"shopsecure/internal/core/domain/model/kernel"
)

// LogNotifier writes messages to the log instead of sending them. Development only:
// the body contains the passcode.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (n *LogNotifier) Send(ctx context.Context, to kernel.Email, subject, body string) error {
	n.logger.InfoContext(ctx, "notification",
		"to", to.String(),
		"subject", subject,
		"body", body,
	)
	return nil
}
