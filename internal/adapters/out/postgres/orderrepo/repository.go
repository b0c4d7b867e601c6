package orderrepo

import (
	"context"
	"errors"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/order"
	"shopsecure/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes every mutable column, zero values included: a reset attempt
// counter or a consumed code must reach the row.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "passcode_state", "passcode_code", "passcode_issued_at", "passcode_attempts").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(r.db.WithContext(ctx), id.String(), "id = ?", id.Bytes())
}

func (r *GormOrderRepository) GetByCode(ctx context.Context, code kernel.OrderCode) (*order.Order, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	return r.first(r.db.WithContext(ctx), code.String(), "code = ?", code.String())
}

// GetByCodeForUpdate holds a row lock (SELECT ... FOR UPDATE) until the
// surrounding transaction ends.
func (r *GormOrderRepository) GetByCodeForUpdate(ctx context.Context, code kernel.OrderCode) (*order.Order, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	return r.first(r.locking(ctx), code.String(), "code = ?", code.String())
}

func (r *GormOrderRepository) GetLatestPendingForUserForUpdate(
	ctx context.Context,
	userID kernel.UUID,
) (*order.Order, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return r.first(
		r.locking(ctx).Order("created_at DESC"),
		"latest pending for "+userID.String(),
		"user_id = ? AND status = ?", userID.Bytes(), int(order.Pending),
	)
}

func (r *GormOrderRepository) GetFirstDeliveredForUser(ctx context.Context, userID kernel.UUID) (*order.Order, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return r.first(
		r.db.WithContext(ctx).Order("created_at ASC"),
		"first delivered for "+userID.String(),
		"user_id = ? AND status = ?", userID.Bytes(), int(order.Delivered),
	)
}

func (r *GormOrderRepository) locking(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
}

// first loads the first matching row. First orders by primary key only when no
// order is given, so Take is used to keep the caller's ordering.
func (r *GormOrderRepository) first(db *gorm.DB, what string, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	if err := db.Where(query, args...).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", what)
		}
		return nil, err
	}

	return toDomain(dto)
}
