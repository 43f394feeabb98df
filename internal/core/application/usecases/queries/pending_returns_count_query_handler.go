package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// PendingReturnsCountQueryHandler counts orders with a pending return.
type PendingReturnsCountQueryHandler struct {
	db *gorm.DB
}

// NewPendingReturnsCountQueryHandler creates a handler over a gorm
// connection.
func NewPendingReturnsCountQueryHandler(db *gorm.DB) PendingReturnsCountQueryHandler {
	return PendingReturnsCountQueryHandler{db: db}
}

// Handle counts orders where the order-level status or any item status is
// ReturnRequested. The EXISTS subquery keeps multi-item orders counted once.
func (h PendingReturnsCountQueryHandler) Handle(ctx context.Context, query PendingReturnsCountQuery) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM orders o
		WHERE o.status = ?
		   OR EXISTS (
			SELECT 1 FROM order_items i
			WHERE i.order_id = o.id AND i.status = ?
		   )
	`, int(order.ReturnRequested), int(order.ReturnRequested)).Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
