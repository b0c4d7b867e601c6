package ports

import (
	"context"

	"shopsecure/internal/core/domain/model/feedback"
)

type FeedbackRepository interface {
	Add(ctx context.Context, f *feedback.Feedback) error
}
