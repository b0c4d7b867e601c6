package ports

import (
	"context"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/notification"
)

// NotificationRepository is the outbox of undelivered passcode messages.
type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error

	Update(ctx context.Context, n *notification.Notification) error

	// GetClaimableForUpdate locks up to limit Pending entries whose claim is unset
	// or ran out before now, oldest first, skipping rows locked by another worker.
	GetClaimableForUpdate(ctx context.Context, now time.Time, limit int) ([]*notification.Notification, error)

	// GetForUpdate locks one entry by id. Returns gorm.ErrRecordNotFound when absent.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetPendingForOrder returns the Pending entries queued for an order.
	GetPendingForOrder(ctx context.Context, orderID kernel.UUID) ([]*notification.Notification, error)
}
