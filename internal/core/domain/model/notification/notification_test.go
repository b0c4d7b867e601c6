package notification_test

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/notification"
	"shopsecure/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var queuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newPending(t *testing.T) *notification.Notification {
	t.Helper()
	email, err := kernel.NewEmail("jane@example.com")
	require.NoError(t, err)

	n, err := notification.NewNotification(kernel.NewUUID(), kernel.NewUUID(), email,
		"Your delivery passcode", "Your passcode is 123456", queuedAt, queuedAt.Add(2*time.Minute))
	require.NoError(t, err)
	return n
}

func TestNewNotification(t *testing.T) {
	n := newPending(t)

	require.NoError(t, n.Validate())
	assert.Equal(t, notification.StatusPending, n.Status())
	assert.Equal(t, 0, n.Attempts())
	assert.False(t, n.IsExpired(queuedAt.Add(2*time.Minute)))
	assert.True(t, n.IsExpired(queuedAt.Add(2*time.Minute+time.Millisecond)))
}

func TestNewUndeliveredNotification(t *testing.T) {
	// Given
	email, err := kernel.NewEmail("jane@example.com")
	require.NoError(t, err)

	// When
	n, err := notification.NewUndeliveredNotification(kernel.NewUUID(), kernel.NewUUID(), email,
		"Your delivery passcode", "Your passcode is 123456", errors.New("535 authentication failed"),
		queuedAt, queuedAt.Add(2*time.Minute))

	// Then
	require.NoError(t, err)
	assert.Equal(t, notification.StatusPending, n.Status())
	assert.Equal(t, 1, n.Attempts())
	assert.Equal(t, "535 authentication failed", n.LastError())

	_, err = notification.NewUndeliveredNotification(kernel.NewUUID(), kernel.NewUUID(), email,
		"", "body", errors.New("x"), queuedAt, queuedAt)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNotification_Transitions(t *testing.T) {
	t.Run("failure keeps the entry pending", func(t *testing.T) {
		n := newPending(t)

		require.NoError(t, n.RecordFailure(errors.New(strings.Repeat("x", 600))))

		assert.Equal(t, notification.StatusPending, n.Status())
		assert.Equal(t, 1, n.Attempts())
		assert.Len(t, n.LastError(), 500)
	})

	t.Run("long multi-byte error is cut on a character boundary", func(t *testing.T) {
		// Given an error whose 500th byte falls inside a two-byte character
		n := newPending(t)
		cause := errors.New("x" + strings.Repeat("é", 300))

		// When
		require.NoError(t, n.RecordFailure(cause))

		// Then
		assert.True(t, utf8.ValidString(n.LastError()))
		assert.Len(t, n.LastError(), 499)
		assert.True(t, strings.HasPrefix(cause.Error(), n.LastError()))
	})

	t.Run("invalid UTF-8 in the error is replaced", func(t *testing.T) {
		n := newPending(t)

		require.NoError(t, n.RecordFailure(errors.New("dial: \xff\xfe refused")))

		assert.True(t, utf8.ValidString(n.LastError()))
		assert.Contains(t, n.LastError(), "refused")
	})

	testCases := []struct {
		name   string
		apply  func(n *notification.Notification) error
		status notification.Status
	}{
		{name: "delivered", apply: (*notification.Notification).MarkDelivered, status: notification.StatusDelivered},
		{name: "abandoned", apply: (*notification.Notification).Abandon, status: notification.StatusAbandoned},
		{name: "superseded", apply: (*notification.Notification).Supersede, status: notification.StatusSuperseded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := newPending(t)

			require.NoError(t, tc.apply(n))
			assert.Equal(t, tc.status, n.Status())

			// Final statuses accept no further transition.
			require.ErrorIs(t, tc.apply(n), notification.ErrNotificationNotPending)
			require.ErrorIs(t, n.RecordFailure(nil), errs.ErrStateConflict)
		})
	}
}

func TestNotification_Claim(t *testing.T) {
	t.Run("claim holds until the lease runs out", func(t *testing.T) {
		// Given
		n := newPending(t)

		// When
		require.NoError(t, n.Claim(queuedAt, time.Minute))

		// Then
		assert.True(t, n.IsClaimed(queuedAt.Add(59*time.Second)))
		assert.False(t, n.IsClaimed(queuedAt.Add(time.Minute)))
		require.ErrorIs(t, n.Claim(queuedAt.Add(time.Second), time.Minute), notification.ErrEntryAlreadyClaimed)
		require.NoError(t, n.Claim(queuedAt.Add(time.Minute), time.Minute))
	})

	t.Run("failure releases the claim", func(t *testing.T) {
		n := newPending(t)
		require.NoError(t, n.Claim(queuedAt, time.Minute))

		require.NoError(t, n.RecordFailure(errors.New("smtp timeout")))

		assert.False(t, n.IsClaimed(queuedAt))
		assert.True(t, n.ClaimedUntil().IsZero())
	})

	t.Run("delivered entry cannot be claimed", func(t *testing.T) {
		n := newPending(t)
		require.NoError(t, n.MarkDelivered())

		require.ErrorIs(t, n.Claim(queuedAt, time.Minute), notification.ErrNotificationNotPending)
	})

	t.Run("non-positive lease", func(t *testing.T) {
		n := newPending(t)

		require.ErrorIs(t, n.Claim(queuedAt, 0), errs.ErrValueIsInvalid)
	})
}

func TestRestoreNotification_Validation(t *testing.T) {
	email, err := kernel.NewEmail("jane@example.com")
	require.NoError(t, err)

	_, err = notification.RestoreNotification(kernel.NewUUID(), kernel.NewUUID(), email, "s", "b",
		notification.StatusUnknown, 0, "", time.Time{}, queuedAt, queuedAt)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = notification.RestoreNotification(kernel.NewUUID(), kernel.NewUUID(), email, "s", "b",
		notification.StatusPending, 0, "", time.Time{}, queuedAt, queuedAt.Add(-time.Second))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = notification.RestoreNotification(kernel.NewUUID(), kernel.NewUUID(), email, "", "b",
		notification.StatusPending, 0, "", time.Time{}, queuedAt, queuedAt)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "PENDING", notification.StatusPending.String())
	assert.Equal(t, "SUPERSEDED", notification.StatusSuperseded.String())
	assert.Equal(t, "UNKNOWN", notification.Status(42).String())
}
