// Package securitylogrepo stores the security transaction log. Rows are append-only.
package securitylogrepo

import (
	"time"

	"shopsecure/internal/core/domain/model/securitylog"

	"github.com/google/uuid"
)

type TransactionLogDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReturnRequestID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null"`
	Email           string    `gorm:"type:varchar(255);not null"`
	OrderCode       string    `gorm:"type:varchar(8);not null"`
	Similarity      float64   `gorm:"not null"`
	RiskScore       float64   `gorm:"not null"`
	Severity        string    `gorm:"type:varchar(16);index;not null"`
	Decision        string    `gorm:"type:varchar(16);not null"`
	CreatedAt       time.Time `gorm:"index;not null"`
}

func (TransactionLogDTO) TableName() string {
	return "security_logs"
}

func fromDomain(l *securitylog.TransactionLog) TransactionLogDTO {
	return TransactionLogDTO{
		ID:              l.ID().Bytes(),
		ReturnRequestID: l.ReturnRequestID().Bytes(),
		UserID:          l.UserID().Bytes(),
		Email:           l.Email().String(),
		OrderCode:       l.OrderCode().String(),
		Similarity:      l.Similarity(),
		RiskScore:       l.RiskScore(),
		Severity:        l.Severity().String(),
		Decision:        l.Decision().String(),
		CreatedAt:       l.CreatedAt().UTC(),
	}
}
