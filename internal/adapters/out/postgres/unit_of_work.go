// Package postgres wires the GORM repositories into a Unit of Work.
//
// Repositories obtained from a GormUnitOfWork after Begin share its transaction
// until Commit or Rollback. Obtained before Begin, they run each statement on
// the pool. Each command must Create its own unit of work; instances are not
// safe for concurrent use.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"shopsecure/internal/adapters/out/postgres/feedbackrepo"
	"shopsecure/internal/adapters/out/postgres/notificationrepo"
	"shopsecure/internal/adapters/out/postgres/orderrepo"
	"shopsecure/internal/adapters/out/postgres/referenceimagerepo"
	"shopsecure/internal/adapters/out/postgres/returnrepo"
	"shopsecure/internal/adapters/out/postgres/securitylogrepo"
	"shopsecure/internal/adapters/out/postgres/userrepo"
	"shopsecure/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin is a no-op when a transaction is already open.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open,
// which makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReturnRequestRepository() ports.ReturnRequestRepository {
	return returnrepo.NewGormReturnRequestRepository(uow.conn())
}

func (uow *GormUnitOfWork) SecurityLogRepository() ports.SecurityLogRepository {
	return securitylogrepo.NewGormSecurityLogRepository(uow.conn())
}

func (uow *GormUnitOfWork) FeedbackRepository() ports.FeedbackRepository {
	return feedbackrepo.NewGormFeedbackRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReferenceImageRepository() ports.ReferenceImageRepository {
	return referenceimagerepo.NewGormReferenceImageRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
