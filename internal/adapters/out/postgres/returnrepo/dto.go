// Package returnrepo stores return requests. Rows are append-only.
package returnrepo

import (
	"time"

	"shopsecure/internal/core/domain/model/returns"

	"github.com/google/uuid"
)

type ReturnRequestDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	OrderCode      string    `gorm:"type:varchar(8);not null"`
	RequesterEmail string    `gorm:"type:varchar(255);not null"`
	Reason         string    `gorm:"type:text;not null"`
	ImageRef       string    `gorm:"type:varchar(512);not null"`
	Similarity     float64   `gorm:"not null"`
	RiskScore      float64   `gorm:"not null"`
	Decision       string    `gorm:"type:varchar(16);not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (ReturnRequestDTO) TableName() string {
	return "return_requests"
}

func fromDomain(r *returns.ReturnRequest) ReturnRequestDTO {
	return ReturnRequestDTO{
		ID:             r.ID().Bytes(),
		OrderID:        r.OrderID().Bytes(),
		OrderCode:      r.OrderCode().String(),
		RequesterEmail: r.RequesterEmail().String(),
		Reason:         r.Reason(),
		ImageRef:       r.ImageRef(),
		Similarity:     r.Similarity(),
		RiskScore:      r.RiskScore(),
		Decision:       r.Decision().String(),
		CreatedAt:      r.CreatedAt().UTC(),
	}
}
