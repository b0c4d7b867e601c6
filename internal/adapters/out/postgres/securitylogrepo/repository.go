package securitylogrepo

import (
	"context"

	"shopsecure/internal/core/domain/model/securitylog"

	"gorm.io/gorm"
)

// GormSecurityLogRepository implements ports.SecurityLogRepository using GORM.
type GormSecurityLogRepository struct {
	db *gorm.DB
}

func NewGormSecurityLogRepository(db *gorm.DB) *GormSecurityLogRepository {
	return &GormSecurityLogRepository{db: db}
}

func (r *GormSecurityLogRepository) Add(ctx context.Context, entry *securitylog.TransactionLog) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}
