package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"shopsecure/internal/core/application/usecases/commands"
	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/order"
	"shopsecure/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newVerifyHandler(t *testing.T, now time.Time, uow *MockUoW) *commands.VerifyPasscodeCommandHandler {
	t.Helper()
	h := commands.NewVerifyPasscodeCommandHandler(
		passcodeUoWFactory{newUoWQueue(t, uow)},
		fixedClock{now: now},
		order.DefaultPasscodePolicy(),
		slog.Default(),
	)
	return &h
}

func TestNewVerifyPasscodeCommand(t *testing.T) {
	cmd, err := commands.NewVerifyPasscodeCommand(kernel.NewUUID(), "", " 123456 ")
	require.NoError(t, err)
	assert.Equal(t, "123456", cmd.Passcode())

	_, err = commands.NewVerifyPasscodeCommand(kernel.NewUUID(), "", "  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestVerifyPasscodeCommandHandler_Handle(t *testing.T) {
	t.Run("correct passcode delivers the order", func(t *testing.T) {
		// Given an order with an outstanding passcode
		ctx := t.Context()
		userID := kernel.NewUUID()
		o := newPendingOrder(t, userID)
		require.NoError(t, o.IssuePasscode("482913", fixedNow))
		cmd, err := commands.NewVerifyPasscodeCommand(userID, "", "482913")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orders).Once(),
			orders.On("GetLatestPendingForUserForUpdate", ctx, userID).Return(o, nil).Once(),
			orders.On("Update", ctx, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		// When
		h := newVerifyHandler(t, fixedNow.Add(time.Minute), uow)
		result, err := h.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, result.Status)
		assert.True(t, result.OrderCode.IsEqual(o.Code()))
		orders.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("wrong passcode persists the consumed attempt", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		o := newPendingOrder(t, userID)
		require.NoError(t, o.IssuePasscode("482913", fixedNow))
		cmd, err := commands.NewVerifyPasscodeCommand(userID, o.Code().String(), "000000")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orders).Once(),
			orders.On("GetByCodeForUpdate", ctx, o.Code()).Return(o, nil).Once(),
			orders.On("Update", ctx, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err = newVerifyHandler(t, fixedNow, uow).Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrIncorrectPasscode)
		assert.Equal(t, 1, o.Passcode().Attempts())
		assert.Equal(t, order.Pending, o.Status())
		uow.AssertExpectations(t)
	})

	t.Run("last wrong attempt is persisted and locks the passcode", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		o := newPendingOrder(t, userID)
		require.NoError(t, o.IssuePasscode("482913", fixedNow))
		for range 2 {
			require.ErrorIs(t, o.VerifyPasscode("000000", fixedNow, order.DefaultPasscodePolicy()),
				order.ErrIncorrectPasscode)
		}
		cmd, err := commands.NewVerifyPasscodeCommand(userID, "", "000000")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orders).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		orders.On("GetLatestPendingForUserForUpdate", ctx, userID).Return(o, nil).Once()
		orders.On("Update", ctx, o).Return(nil).Once()

		_, err = newVerifyHandler(t, fixedNow, uow).Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrPasscodeAttemptsExhausted)
		require.ErrorIs(t, err, errs.ErrRateLimited)
		assert.Equal(t, 3, o.Passcode().Attempts())
		orders.AssertExpectations(t)
	})

	t.Run("expired passcode changes nothing", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		o := newPendingOrder(t, userID)
		require.NoError(t, o.IssuePasscode("482913", fixedNow))
		cmd, err := commands.NewVerifyPasscodeCommand(userID, "", "482913")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orders).Once(),
			orders.On("GetLatestPendingForUserForUpdate", ctx, userID).Return(o, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		_, err = newVerifyHandler(t, fixedNow.Add(3*time.Minute), uow).Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrPasscodeExpired)
		require.ErrorIs(t, err, errs.ErrExpired)
		orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("no pending order", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		cmd, err := commands.NewVerifyPasscodeCommand(userID, "", "482913")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orders).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		orders.On("GetLatestPendingForUserForUpdate", ctx, userID).
			Return(nil, errs.NewObjectNotFoundError("order", userID)).Once()

		_, err = newVerifyHandler(t, fixedNow, uow).Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrNoPendingOrder)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("no passcode issued", func(t *testing.T) {
		ctx := t.Context()
		userID := kernel.NewUUID()
		o := newPendingOrder(t, userID)
		cmd, err := commands.NewVerifyPasscodeCommand(userID, "", "482913")
		require.NoError(t, err)

		orders := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orders).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		orders.On("GetLatestPendingForUserForUpdate", ctx, userID).Return(o, nil).Once()

		_, err = newVerifyHandler(t, fixedNow, uow).Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrNoActivePasscode)
	})
}
