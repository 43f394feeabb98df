// Package queries contains read-only projections over the order store.
// Query handlers read through gorm directly; they never mutate state and
// never consult the transition machinery.
package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// SortDirection orders listings by creation time.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// ListOrdersQuery retrieves a page of order summaries for the admin console.
// Supports case-insensitive substring search over customer name and email,
// an optional status filter, and creation-time sorting. Page numbers are
// 1-based; page size is fixed by the handler.
type ListOrdersQuery struct {
	page   int
	search string
	status *order.Status
	sort   SortDirection

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query. A nil status means no status
// filter; an empty search matches everything.
func NewListOrdersQuery(page int, search string, status *order.Status, sort SortDirection) (ListOrdersQuery, error) {
	if page < 1 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, int(^uint(0)>>1))
	}
	if sort != SortAscending && sort != SortDescending {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("sort")
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		page:   page,
		search: search,
		status: status,
		sort:   sort,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Page returns the requested 1-based page number.
func (q ListOrdersQuery) Page() int { return q.page }

// Search returns the customer name/email substring filter.
func (q ListOrdersQuery) Search() string { return q.search }

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status { return q.status }

// Sort returns the creation-time sort direction.
func (q ListOrdersQuery) Sort() SortDirection { return q.sort }

// OrderSummary is one row of the order listing projection.
type OrderSummary struct {
	ID            kernel.UUID
	CustomerName  string
	CustomerEmail string
	Status        order.Status
	TotalCents    int64
	ItemCount     int
	CreatedAt     time.Time
}

// OrdersPage is a stable page of order summaries.
// TotalPages is ceil(TotalCount / page size).
type OrdersPage struct {
	Items      []OrderSummary
	Page       int
	TotalPages int
	TotalCount int
}
