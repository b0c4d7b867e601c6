package queries

import (
	"errors"
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/returns"
	"shopsecure/internal/core/domain/model/user"
	"shopsecure/internal/pkg/guard"
)

// DashboardLogLimit is the number of security log entries shown on the dashboard.
const DashboardLogLimit = 20

var (
	ErrGetDashboardStatsQueryIsNotConstructed = errors.New(
		"GetDashboardStatsQuery must be created via NewGetDashboardStatsQuery constructor",
	)
)

// GetDashboardStatsQuery asks for the fraud overview shown to administrators.
type GetDashboardStatsQuery struct {
	principal user.Principal

	guard guard.ConstructorGuard
}

// NewGetDashboardStatsQuery binds the query to the caller; the handler refuses non-admins.
func NewGetDashboardStatsQuery(principal user.Principal) GetDashboardStatsQuery {
	return GetDashboardStatsQuery{principal: principal, guard: guard.NewConstructorGuard()}
}

// Principal returns the caller the statistics are requested for.
func (q GetDashboardStatsQuery) Principal() user.Principal {
	return q.principal
}

func (q GetDashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardStatsQueryIsNotConstructed)
}

// GetDashboardStatsQueryResponse aggregates counters and the newest log entries.
type GetDashboardStatsQueryResponse struct {
	TotalOrders    int64
	TotalReturns   int64
	CriticalAlerts int64
	RecentLogs     []SecurityLogView
}

// SecurityLogView is one row of the security transaction log.
type SecurityLogView struct {
	ID         kernel.UUID
	Email      string
	OrderCode  string
	Similarity float64
	RiskScore  float64
	Severity   returns.Severity
	Decision   returns.Decision
	CreatedAt  time.Time
}
