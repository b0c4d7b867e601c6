package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	postgres_adapter "shopsecure/internal/adapters/out/postgres"
	"shopsecure/internal/adapters/out/postgres/pgtest"
	"shopsecure/internal/core/application/usecases/queries"
	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/order"
	"shopsecure/internal/core/domain/model/returns"
	"shopsecure/internal/core/domain/model/securitylog"
	"shopsecure/internal/core/domain/model/user"
	"shopsecure/internal/core/ports"

	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type GetDashboardStatsQueryHandlerTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
	handler queries.GetDashboardStatsQueryHandler
	admin   user.Principal
}

func (s *GetDashboardStatsQueryHandlerTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	s.Require().NoError(err)
	s.pg = pg
	s.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)
	s.handler = queries.NewGetDashboardStatsQueryHandler(pg.DB)

	s.admin, err = user.NewPrincipal(kernel.NewUUID(), mustEmail("admin@shop.test"), user.RoleAdmin)
	s.Require().NoError(err)
}

func (s *GetDashboardStatsQueryHandlerTestSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate())
}

func (s *GetDashboardStatsQueryHandlerTestSuite) TearDownSuite() {
	if s.pg != nil {
		s.Require().NoError(s.pg.Terminate(context.Background()))
	}
}

func (s *GetDashboardStatsQueryHandlerTestSuite) TestEmptyDatabase() {
	stats, err := s.handler.Handle(s.T().Context(), queries.NewGetDashboardStatsQuery(s.admin))

	s.Require().NoError(err)
	s.Zero(stats.TotalOrders)
	s.Zero(stats.TotalReturns)
	s.Zero(stats.CriticalAlerts)
	s.Empty(stats.RecentLogs)
}

func (s *GetDashboardStatsQueryHandlerTestSuite) TestCountsAndLatestLogs() {
	ctx := s.T().Context()

	// Given
	customer := kernel.NewUUID()
	email := mustEmail("buyer@shop.test")
	pending := s.newOrder(customer)
	s.Require().NoError(s.factory.Create().OrderRepository().Add(ctx, pending))

	delivered := s.newOrder(customer)
	s.Require().NoError(delivered.IssuePasscode("123456", baseTime))
	s.Require().NoError(delivered.VerifyPasscode("123456", baseTime, order.DefaultPasscodePolicy()))
	s.Require().NoError(s.factory.Create().OrderRepository().Add(ctx, delivered))

	// 22 returns, every third one rejected
	var critical int64
	for i := range 22 {
		decision := returns.DecisionAccepted
		if i%3 == 0 {
			decision = returns.DecisionRejected
			critical++
		}
		s.addReturn(delivered, customer, email, decision, baseTime.Add(time.Duration(i)*time.Minute))
	}

	// When
	stats, err := s.handler.Handle(ctx, queries.NewGetDashboardStatsQuery(s.admin))

	// Then
	s.Require().NoError(err)
	s.Equal(int64(2), stats.TotalOrders)
	s.Equal(int64(22), stats.TotalReturns)
	s.Equal(critical, stats.CriticalAlerts)
	s.Require().Len(stats.RecentLogs, queries.DashboardLogLimit)

	newest := stats.RecentLogs[0]
	s.True(newest.CreatedAt.Equal(baseTime.Add(21 * time.Minute)))
	s.Equal(returns.DecisionRejected, newest.Decision)
	s.Equal(returns.SeverityCritical, newest.Severity)
	s.Equal("buyer@shop.test", newest.Email)
	s.Equal(delivered.Code().String(), newest.OrderCode)
	for i := 1; i < len(stats.RecentLogs); i++ {
		s.False(stats.RecentLogs[i].CreatedAt.After(stats.RecentLogs[i-1].CreatedAt))
	}
}

func (s *GetDashboardStatsQueryHandlerTestSuite) TestCustomerIsRefused() {
	customer, err := user.NewPrincipal(kernel.NewUUID(), mustEmail("buyer@shop.test"), user.RoleCustomer)
	s.Require().NoError(err)

	_, err = s.handler.Handle(s.T().Context(), queries.NewGetDashboardStatsQuery(customer))

	s.ErrorIs(err, user.ErrAdminRequired)
}

func (s *GetDashboardStatsQueryHandlerTestSuite) TestUnconstructedQuery() {
	_, err := s.handler.Handle(s.T().Context(), queries.GetDashboardStatsQuery{})

	s.ErrorIs(err, queries.ErrGetDashboardStatsQueryIsNotConstructed)
}

func (s *GetDashboardStatsQueryHandlerTestSuite) newOrder(userID kernel.UUID) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderCode(), userID,
		"Wireless headphones", 2499, "12 Harbour Road", "", baseTime)
	s.Require().NoError(err)
	return o
}

func (s *GetDashboardStatsQueryHandlerTestSuite) addReturn(
	o *order.Order,
	userID kernel.UUID,
	email kernel.Email,
	decision returns.Decision,
	at time.Time,
) {
	ctx := s.T().Context()
	similarity := 90.0
	if decision == returns.DecisionRejected {
		similarity = 10.0
	}

	rr, err := returns.NewReturnRequest(kernel.NewUUID(), o.ID(), o.Code(), email, "Arrived broken",
		fmt.Sprintf("uploads/%s/%d.png", o.Code(), at.Unix()), similarity, 100-similarity, decision, at)
	s.Require().NoError(err)
	entry, err := securitylog.NewTransactionLog(kernel.NewUUID(), userID, rr)
	s.Require().NoError(err)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.ReturnRequestRepository().Add(ctx, rr))
	s.Require().NoError(uow.SecurityLogRepository().Add(ctx, entry))
	s.Require().NoError(uow.Commit(ctx))
}

func mustEmail(s string) kernel.Email {
	e, err := kernel.NewEmail(s)
	if err != nil {
		panic(err)
	}
	return e
}

func TestGetDashboardStatsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDashboardStatsQueryHandlerTestSuite))
}
