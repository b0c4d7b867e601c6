package notificationrepo

import (
	"context"
	"fmt"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/notification"
	"shopsecure/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "attempts", "last_error", "claimed_until").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetClaimableForUpdate uses FOR UPDATE SKIP LOCKED so concurrent retry workers
// split the backlog instead of sending the same message twice. Entries still
// claimed by a sender are left out until their lease runs out.
func (r *GormNotificationRepository) GetClaimableForUpdate(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*notification.Notification, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("limit", fmt.Errorf("%d is not positive", limit))
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", int(notification.StatusPending)).
		Where("claimed_until IS NULL OR claimed_until <= ?", now.UTC()).
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetForUpdate locks a single entry so its outcome can be stored.
func (r *GormNotificationRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id.Bytes()).
		First(&dto).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormNotificationRepository) GetPendingForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*notification.Notification, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID.Bytes(), int(notification.StatusPending)).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []NotificationDTO) ([]*notification.Notification, error) {
	out := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
