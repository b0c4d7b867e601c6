package queries

import (
	"context"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/returns"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDashboardStatsQueryHandler reads the dashboard straight from the tables,
// bypassing the aggregates.
type GetDashboardStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardStatsQueryHandler reads straight from the database, bypassing
// the repositories.
func NewGetDashboardStatsQueryHandler(db *gorm.DB) GetDashboardStatsQueryHandler {
	return GetDashboardStatsQueryHandler{db: db}
}

// Handle returns the fraud overview for an admin.
//
// Parameters:
//   - ctx: request context
//   - query: carries the caller, who must be an admin
//
// Returns the order, return and CRITICAL alert counts plus the latest
// DashboardLogLimit security log rows, newest first.
func (h GetDashboardStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardStatsQuery,
) (GetDashboardStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}
	if err := query.Principal().RequireAdmin(); err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}

	var stats GetDashboardStatsQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM orders) AS total_orders,
			(SELECT COUNT(*) FROM return_requests) AS total_returns,
			(SELECT COUNT(*) FROM security_logs WHERE severity = ?) AS critical_alerts
	`, returns.SeverityCritical.String()).Row().Scan(&stats.TotalOrders, &stats.TotalReturns, &stats.CriticalAlerts)
	if err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}

	stats.RecentLogs, err = h.recentLogs(ctx)
	if err != nil {
		return GetDashboardStatsQueryResponse{}, err
	}

	return stats, nil
}

func (h GetDashboardStatsQueryHandler) recentLogs(ctx context.Context) ([]SecurityLogView, error) {
	logs := make([]SecurityLogView, 0, DashboardLogLimit)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			email,
			order_code,
			similarity,
			risk_score,
			severity,
			decision,
			created_at
		FROM security_logs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, DashboardLogLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var view SecurityLogView
		var id uuid.UUID
		var severity, decision string

		err = rows.Scan(
			&id,
			&view.Email,
			&view.OrderCode,
			&view.Similarity,
			&view.RiskScore,
			&severity,
			&decision,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		logID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		view.ID = logID

		if view.Severity, err = returns.ParseSeverity(severity); err != nil {
			return nil, err
		}
		if view.Decision, err = returns.ParseDecision(decision); err != nil {
			return nil, err
		}

		logs = append(logs, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
