// Package feedbackrepo stores customer feedback.
package feedbackrepo

import (
	"time"

	"shopsecure/internal/core/domain/model/feedback"

	"github.com/google/uuid"
)

type FeedbackDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	OrderCode string    `gorm:"type:varchar(8);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (FeedbackDTO) TableName() string {
	return "feedback"
}

func fromDomain(f *feedback.Feedback) FeedbackDTO {
	return FeedbackDTO{
		ID:        f.ID().Bytes(),
		UserID:    f.UserID().Bytes(),
		OrderCode: f.OrderCode().String(),
		Email:     f.Email().String(),
		Rating:    f.Rating(),
		Comment:   f.Comment(),
		CreatedAt: f.CreatedAt().UTC(),
	}
}
