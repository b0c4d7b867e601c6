package securitylog_test

import (
	"testing"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/returns"
	"shopsecure/internal/core/domain/model/securitylog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReturn(t *testing.T, similarity float64, decision returns.Decision) *returns.ReturnRequest {
	t.Helper()
	email, err := kernel.NewEmail("buyer@example.com")
	require.NoError(t, err)

	rr, err := returns.NewReturnRequest(kernel.NewUUID(), kernel.NewUUID(), kernel.NewOrderCode(), email,
		"wrong size", "img.png", similarity, 100-similarity, decision, time.Now())
	require.NoError(t, err)
	return rr
}

func TestNewTransactionLog(t *testing.T) {
	t.Run("copies scores from the return", func(t *testing.T) {
		// Given
		rr := newReturn(t, 10, returns.DecisionRejected)
		userID := kernel.NewUUID()

		// When
		entry, err := securitylog.NewTransactionLog(kernel.NewUUID(), userID, rr)

		// Then
		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.Equal(t, rr.ID(), entry.ReturnRequestID())
		assert.Equal(t, userID, entry.UserID())
		assert.True(t, entry.Email().IsEqual(rr.RequesterEmail()))
		assert.True(t, entry.OrderCode().IsEqual(rr.OrderCode()))
		assert.InDelta(t, rr.Similarity(), entry.Similarity(), 1e-9)
		assert.InDelta(t, rr.RiskScore(), entry.RiskScore(), 1e-9)
		assert.Equal(t, returns.SeverityCritical, entry.Severity())
		assert.Equal(t, returns.DecisionRejected, entry.Decision())
		assert.Equal(t, rr.CreatedAt(), entry.CreatedAt())
	})

	t.Run("non-rejections are low severity", func(t *testing.T) {
		entry, err := securitylog.NewTransactionLog(kernel.NewUUID(), kernel.NewUUID(),
			newReturn(t, 50, returns.DecisionPendingReview))

		require.NoError(t, err)
		assert.Equal(t, returns.SeverityLow, entry.Severity())
	})

	t.Run("requires a constructed return", func(t *testing.T) {
		_, err := securitylog.NewTransactionLog(kernel.NewUUID(), kernel.NewUUID(), nil)

		require.ErrorIs(t, err, returns.ErrReturnRequestIsNotConstructed)
	})
}
