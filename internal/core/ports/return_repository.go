package ports

import (
	"context"

	"shopsecure/internal/core/domain/model/returns"
	"shopsecure/internal/core/domain/model/securitylog"
)

// ReturnRequestRepository stores return records. Records are append-only.
type ReturnRequestRepository interface {
	Add(ctx context.Context, r *returns.ReturnRequest) error
}

// SecurityLogRepository stores audit entries. Entries are append-only.
type SecurityLogRepository interface {
	Add(ctx context.Context, entry *securitylog.TransactionLog) error
}
