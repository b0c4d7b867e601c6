package feedbackrepo

import (
	"context"

	"shopsecure/internal/core/domain/model/feedback"

	"gorm.io/gorm"
)

// GormFeedbackRepository implements ports.FeedbackRepository using GORM.
type GormFeedbackRepository struct {
	db *gorm.DB
}

func NewGormFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

func (r *GormFeedbackRepository) Add(ctx context.Context, f *feedback.Feedback) error {
	if err := f.Validate(); err != nil {
		return err
	}

	dto := fromDomain(f)
	return r.db.WithContext(ctx).Create(&dto).Error
}
