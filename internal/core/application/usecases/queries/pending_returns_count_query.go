package queries

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrPendingReturnsCountQueryIsNotConstructed = errors.New(
	"PendingReturnsCountQuery must be created via NewPendingReturnsCountQuery constructor",
)

// PendingReturnsCountQuery counts orders awaiting a return decision: orders
// whose own status or any item's status is ReturnRequested. An order with
// one returning item among delivered ones counts exactly once.
type PendingReturnsCountQuery struct {
	guard guard.ConstructorGuard
}

// NewPendingReturnsCountQuery creates the parameterless count query.
func NewPendingReturnsCountQuery() PendingReturnsCountQuery {
	return PendingReturnsCountQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q PendingReturnsCountQuery) Validate() error {
	return q.guard.Validate(ErrPendingReturnsCountQueryIsNotConstructed)
}
