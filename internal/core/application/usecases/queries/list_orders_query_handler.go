package queries

import (
	"context"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads order summary pages from the database.
// The page size is fixed at construction so pagination stays stable across
// requests.
type ListOrdersQueryHandler struct {
	db       *gorm.DB
	pageSize int
}

// NewListOrdersQueryHandler creates a handler with a fixed page size.
func NewListOrdersQueryHandler(db *gorm.DB, pageSize int) ListOrdersQueryHandler {
	if pageSize < 1 {
		pageSize = 10
	}
	return ListOrdersQueryHandler{db: db, pageSize: pageSize}
}

// Handle executes the listing query: filter, count, then fetch one page.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrdersPage, error) {
	if err := query.Validate(); err != nil {
		return OrdersPage{}, err
	}

	where, args := buildFilter(query)

	var total int
	countSQL := "SELECT COUNT(*) FROM orders" + where
	if err := h.db.WithContext(ctx).Raw(countSQL, args...).Scan(&total).Error; err != nil {
		return OrdersPage{}, err
	}

	direction := "ASC"
	if query.Sort() == SortDescending {
		direction = "DESC"
	}

	listSQL := `
		SELECT
			o.id,
			o.customer_name,
			o.customer_email,
			o.status,
			o.total_cents,
			o.created_at,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id) AS item_count
		FROM orders o` + strings.ReplaceAll(where, "orders.", "o.") + `
		ORDER BY o.created_at ` + direction + `, o.id
		LIMIT ? OFFSET ?`
	listArgs := append(args, h.pageSize, (query.Page()-1)*h.pageSize)

	rows, err := h.db.WithContext(ctx).Raw(listSQL, listArgs...).Rows()
	if err != nil {
		return OrdersPage{}, err
	}
	defer rows.Close()

	summaries := make([]OrderSummary, 0, h.pageSize)
	for rows.Next() {
		var (
			summary OrderSummary
			id      uuid.UUID
			status  int
		)
		if err = rows.Scan(
			&id,
			&summary.CustomerName,
			&summary.CustomerEmail,
			&status,
			&summary.TotalCents,
			&summary.CreatedAt,
			&summary.ItemCount,
		); err != nil {
			return OrdersPage{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return OrdersPage{}, idErr
		}
		summary.ID = orderID
		summary.Status = order.Status(status)
		summaries = append(summaries, summary)
	}
	if err = rows.Err(); err != nil {
		return OrdersPage{}, err
	}

	return OrdersPage{
		Items:      summaries,
		Page:       query.Page(),
		TotalPages: (total + h.pageSize - 1) / h.pageSize,
		TotalCount: total,
	}, nil
}

// buildFilter assembles the WHERE clause shared by the count and list
// statements.
func buildFilter(query ListOrdersQuery) (string, []any) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if search := query.Search(); search != "" {
		clauses = append(clauses, "(orders.customer_name ILIKE ? OR orders.customer_email ILIKE ?)")
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	if status := query.Status(); status != nil {
		clauses = append(clauses, "orders.status = ?")
		args = append(args, int(*status))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
