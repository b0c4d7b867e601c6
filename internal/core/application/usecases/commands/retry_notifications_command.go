package commands

import (
	"errors"
	"fmt"

	"shopsecure/internal/pkg/errs"
	"shopsecure/internal/pkg/guard"
)

// DefaultRetryBatchSize is the number of outbox entries handled per run.
const DefaultRetryBatchSize = 50

var ErrRetryNotificationsCommandIsNotConstructed = errors.New(
	"RetryNotificationsCommand must be created via NewRetryNotificationsCommand constructor",
)

// RetryNotificationsCommand redelivers queued passcode messages.
type RetryNotificationsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewRetryNotificationsCommand(batchSize int) (RetryNotificationsCommand, error) {
	if batchSize <= 0 {
		return RetryNotificationsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batch size", fmt.Errorf("%d is not positive", batchSize))
	}
	return RetryNotificationsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RetryNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrRetryNotificationsCommandIsNotConstructed)
}

func (c RetryNotificationsCommand) BatchSize() int {
	return c.batchSize
}
