// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure that a status change and its queued
// side effects commit or roll back together.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RefundOutboxFactory provides access to the refund outbox within a
	// transaction.
	RefundOutboxFactory interface {
		RefundOutbox() ports.RefundOutbox
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions spanning the order aggregate and the refund
	// outbox. Used by the item status transition, whose refund enqueue must
	// be durable exactly when the status write is.
	UoW interface {
		TxManager
		OrderRepoFactory
		RefundOutboxFactory
	}

	// UoWFactory creates new unit of work instances for transition
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
