// Package ports defines the contracts between the order management core and
// its infrastructure: persistence, the audit sink, and the refund
// collaborator. These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order and its items are always read and written as one unit; no partial
// item mutation is ever persisted.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate as one atomic
	// write. The aggregate's version must match the stored version; a
	// mismatch returns an error wrapping errs.ErrVersionIsInvalid so the
	// caller can reload and revalidate instead of losing a concurrent
	// update.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its complete item sequence.
	// Returns an error wrapping errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
