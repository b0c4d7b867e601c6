package ports

import (
	"context"

	"shopsecure/internal/core/domain/model/kernel"
)

// ReferenceImageRepository maps an order to the stored reference of its canonical
// product image, the image returned items are compared against.
type ReferenceImageRepository interface {
	// Save creates or replaces the reference for an order.
	Save(ctx context.Context, orderID kernel.UUID, imageRef string) error

	// Get returns the stored reference or an errs.ObjectNotFoundError.
	Get(ctx context.Context, orderID kernel.UUID) (string, error)
}
