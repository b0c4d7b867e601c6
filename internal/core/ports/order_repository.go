package ports

import (
	"context"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Methods ending in ForUpdate lock the returned row until the surrounding
// transaction ends; they must be called inside UnitOfWork.Begin/Commit.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and passcode changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCode retrieves an order by its external code without locking.
	GetByCode(ctx context.Context, code kernel.OrderCode) (*order.Order, error)

	// GetByCodeForUpdate retrieves and row-locks an order by external code.
	GetByCodeForUpdate(ctx context.Context, code kernel.OrderCode) (*order.Order, error)

	// GetLatestPendingForUserForUpdate retrieves and row-locks the most recently
	// placed Pending order of a user.
	GetLatestPendingForUserForUpdate(ctx context.Context, userID kernel.UUID) (*order.Order, error)

	// GetFirstDeliveredForUser retrieves the earliest Delivered order of a user.
	GetFirstDeliveredForUser(ctx context.Context, userID kernel.UUID) (*order.Order, error)
}
