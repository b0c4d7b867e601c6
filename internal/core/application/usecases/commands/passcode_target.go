package commands

import (
	"context"
	"errors"
	"strings"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/order"
	"shopsecure/internal/core/ports"
	"shopsecure/internal/pkg/errs"
)

// parseOptionalOrderCode returns the zero OrderCode for blank input.
func parseOptionalOrderCode(s string) (kernel.OrderCode, error) {
	if strings.TrimSpace(s) == "" {
		return kernel.OrderCode{}, nil
	}
	return kernel.OrderCodeFromString(s)
}

// lockTargetOrder row-locks the order a passcode operation addresses: the given
// order if code is set, else the user's most recent Pending order. Orders of
// other users are reported as missing.
func lockTargetOrder(
	ctx context.Context,
	repo ports.OrderRepository,
	userID kernel.UUID,
	code kernel.OrderCode,
) (*order.Order, error) {
	var (
		o   *order.Order
		err error
	)
	if code.IsZero() {
		o, err = repo.GetLatestPendingForUserForUpdate(ctx, userID)
	} else {
		o, err = repo.GetByCodeForUpdate(ctx, code)
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, order.ErrNoPendingOrder
	}
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.ErrNoPendingOrder
	}
	return o, nil
}
