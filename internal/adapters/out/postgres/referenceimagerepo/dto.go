// Package referenceimagerepo maps orders to their canonical product image.
package referenceimagerepo

import (
	"time"

	"github.com/google/uuid"
)

type ReferenceImageDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ImageRef  string    `gorm:"type:varchar(512);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ReferenceImageDTO) TableName() string {
	return "reference_images"
}
