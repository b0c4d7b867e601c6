// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shopsecure/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// ReturnRepoFactory provides the two append-only stores written by a return.
	ReturnRepoFactory interface {
		ReturnRequestRepository() ports.ReturnRequestRepository
		SecurityLogRepository() ports.SecurityLogRepository
	}

	FeedbackRepoFactory interface {
		FeedbackRepository() ports.FeedbackRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	ReferenceImageRepoFactory interface {
		ReferenceImageRepository() ports.ReferenceImageRepository
	}

	// OrderUoW manages order placement and reference images.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ReferenceImageRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PasscodeUoW manages passcode issue and verification.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetByCodeForUpdate(ctx, code)
	//   // ... mutate and persist
	//
	//   err = uow.Commit(ctx)
	PasscodeUoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
		NotificationRepoFactory
	}

	PasscodeUoWFactory interface {
		Create() PasscodeUoW
	}

	// ReturnUoW manages return submissions.
	ReturnUoW interface {
		TxManager
		OrderRepoFactory
		ReferenceImageRepoFactory
		ReturnRepoFactory
	}

	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// UserUoW manages account operations.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// FeedbackUoW manages feedback submission.
	FeedbackUoW interface {
		TxManager
		UserRepoFactory
		OrderRepoFactory
		FeedbackRepoFactory
	}

	FeedbackUoWFactory interface {
		Create() FeedbackUoW
	}

	// NotificationUoW manages the notification outbox.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
