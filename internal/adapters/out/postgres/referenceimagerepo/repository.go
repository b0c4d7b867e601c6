package referenceimagerepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReferenceImageRepository implements ports.ReferenceImageRepository using GORM.
type GormReferenceImageRepository struct {
	db *gorm.DB
}

func NewGormReferenceImageRepository(db *gorm.DB) *GormReferenceImageRepository {
	return &GormReferenceImageRepository{db: db}
}

// Save upserts on the order id; a second registration replaces the first.
func (r *GormReferenceImageRepository) Save(ctx context.Context, orderID kernel.UUID, imageRef string) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(imageRef) == "" {
		return errs.NewValueIsRequiredError("image ref")
	}

	dto := ReferenceImageDTO{
		OrderID:   orderID.Bytes(),
		ImageRef:  imageRef,
		UpdatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"image_ref", "updated_at"}),
		}).
		Create(&dto).Error
}

func (r *GormReferenceImageRepository) Get(ctx context.Context, orderID kernel.UUID) (string, error) {
	if err := orderID.Validate(); err != nil {
		return "", err
	}

	var dto ReferenceImageDTO
	if err := r.db.WithContext(ctx).Take(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("reference image", orderID.String())
		}
		return "", err
	}

	return dto.ImageRef, nil
}
