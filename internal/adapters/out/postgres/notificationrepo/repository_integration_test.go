package notificationrepo_test

import (
	"context"
	"testing"
	"time"

	"shopsecure/internal/adapters/out/postgres/notificationrepo"
	"shopsecure/internal/adapters/out/postgres/pgtest"
	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/notification"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var queuedAt = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type NotificationRepositoryTestSuite struct {
	suite.Suite
	pg   *pgtest.Database
	repo *notificationrepo.GormNotificationRepository
}

func (s *NotificationRepositoryTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	s.Require().NoError(err)
	s.pg = pg
	s.repo = notificationrepo.NewGormNotificationRepository(pg.DB)
}

func (s *NotificationRepositoryTestSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate())
}

func (s *NotificationRepositoryTestSuite) TearDownSuite() {
	if s.pg != nil {
		s.Require().NoError(s.pg.Terminate(context.Background()))
	}
}

func (s *NotificationRepositoryTestSuite) TestPendingOrderedAndFiltered() {
	ctx := s.T().Context()

	// Given
	orderID := kernel.NewUUID()
	second := s.add(orderID, queuedAt.Add(time.Second))
	first := s.add(orderID, queuedAt)
	done := s.add(kernel.NewUUID(), queuedAt)
	s.Require().NoError(done.MarkDelivered())
	s.Require().NoError(s.repo.Update(ctx, done))

	// When
	tx := s.pg.DB.Begin()
	defer tx.Rollback()
	pending, err := notificationrepo.NewGormNotificationRepository(tx).GetClaimableForUpdate(ctx, queuedAt, 10)
	s.Require().NoError(err)
	forOrder, err := s.repo.GetPendingForOrder(ctx, orderID)
	s.Require().NoError(err)

	// Then
	s.Require().Len(pending, 2)
	s.True(pending[0].ID().IsEqual(first.ID()))
	s.True(pending[1].ID().IsEqual(second.ID()))
	s.Len(forOrder, 2)
}

func (s *NotificationRepositoryTestSuite) TestLockedRowsAreSkipped() {
	ctx := s.T().Context()
	s.add(kernel.NewUUID(), queuedAt)
	s.add(kernel.NewUUID(), queuedAt.Add(time.Second))

	first := s.pg.DB.Begin()
	defer first.Rollback()
	claimed, err := notificationrepo.NewGormNotificationRepository(first).GetClaimableForUpdate(ctx, queuedAt, 1)
	s.Require().NoError(err)
	s.Require().Len(claimed, 1)

	second := s.pg.DB.Begin()
	defer second.Rollback()
	rest, err := notificationrepo.NewGormNotificationRepository(second).GetClaimableForUpdate(ctx, queuedAt, 10)
	s.Require().NoError(err)

	s.Require().Len(rest, 1)
	s.False(rest[0].ID().IsEqual(claimed[0].ID()))
}

func (s *NotificationRepositoryTestSuite) TestUpdateKeepsFailureDetails() {
	ctx := s.T().Context()
	n := s.add(kernel.NewUUID(), queuedAt)

	s.Require().NoError(n.RecordFailure(assertErr("dial tcp: connection refused")))
	s.Require().NoError(s.repo.Update(ctx, n))

	got, err := s.repo.GetPendingForOrder(ctx, n.OrderID())
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(1, got[0].Attempts())
	s.Equal("dial tcp: connection refused", got[0].LastError())
	s.Equal("Security OTP - Delivery", got[0].Subject())
}

func (s *NotificationRepositoryTestSuite) TestClaimedRowsAreHiddenUntilLeaseEnds() {
	ctx := s.T().Context()

	// Given an entry claimed for one minute
	n := s.add(kernel.NewUUID(), queuedAt)
	s.Require().NoError(n.Claim(queuedAt, time.Minute))
	s.Require().NoError(s.repo.Update(ctx, n))

	// When
	during, err := s.repo.GetClaimableForUpdate(ctx, queuedAt.Add(30*time.Second), 10)
	s.Require().NoError(err)
	after, err := s.repo.GetClaimableForUpdate(ctx, queuedAt.Add(time.Minute), 10)
	s.Require().NoError(err)

	// Then
	s.Empty(during)
	s.Require().Len(after, 1)
	s.True(after[0].ClaimedUntil().Equal(queuedAt.Add(time.Minute)))
}

func (s *NotificationRepositoryTestSuite) TestGetForUpdate() {
	ctx := s.T().Context()
	n := s.add(kernel.NewUUID(), queuedAt)
	s.Require().NoError(n.MarkDelivered())
	s.Require().NoError(s.repo.Update(ctx, n))

	got, err := s.repo.GetForUpdate(ctx, n.ID())
	s.Require().NoError(err)
	s.Equal(notification.StatusDelivered, got.Status())
	s.True(got.ClaimedUntil().IsZero())

	_, err = s.repo.GetForUpdate(ctx, kernel.NewUUID())
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *NotificationRepositoryTestSuite) TestNonPositiveLimit() {
	_, err := s.repo.GetClaimableForUpdate(s.T().Context(), queuedAt, 0)
	s.Error(err)
}

func (s *NotificationRepositoryTestSuite) add(orderID kernel.UUID, createdAt time.Time) *notification.Notification {
	recipient, err := kernel.NewEmail("buyer@shop.test")
	s.Require().NoError(err)
	n, err := notification.NewNotification(kernel.NewUUID(), orderID, recipient,
		"Security OTP - Delivery", "Your security OTP is: 482913", createdAt, createdAt.Add(2*time.Minute))
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Add(s.T().Context(), n))
	return n
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func TestNotificationRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationRepositoryTestSuite))
}
