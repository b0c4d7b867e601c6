package returnrepo

import (
	"context"

	"shopsecure/internal/core/domain/model/returns"

	"gorm.io/gorm"
)

// GormReturnRequestRepository implements ports.ReturnRequestRepository using GORM.
type GormReturnRequestRepository struct {
	db *gorm.DB
}

func NewGormReturnRequestRepository(db *gorm.DB) *GormReturnRequestRepository {
	return &GormReturnRequestRepository{db: db}
}

func (r *GormReturnRequestRepository) Add(ctx context.Context, rr *returns.ReturnRequest) error {
	if err := rr.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rr)
	return r.db.WithContext(ctx).Create(&dto).Error
}
