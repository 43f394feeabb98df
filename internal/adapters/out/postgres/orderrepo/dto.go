// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"sort"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate. Items are embedded
// rows in their own table, always loaded and written together with the
// order. The version column backs optimistic concurrency.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string
	CustomerEmail string
	Status        int `gorm:"index"`
	TotalCents    int64
	CreatedAt     time.Time
	Version       int
	Items         []ItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the database row for one order line item. Status is nullable:
// legacy records may lack an explicit status, which the domain normalizes to
// Placed at read time. Position preserves the display order of the sequence.
type ItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	Position          int
	ProductID         uuid.UUID `gorm:"type:uuid"`
	Quantity          int
	UnitPriceCents    int64
	Status            *int `gorm:"index"`
	DeliveredAt       *time.Time
	CancelledAt       *time.Time
	ReturnRequestedAt *time.Time
	ReturnReason      string
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
// The version carried here is the loaded version; the repository bumps it
// when it applies an update.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for position, item := range aggregate.Items() {
		status := int(item.Status())
		items = append(items, ItemDTO{
			ID:                item.ID().Bytes(),
			OrderID:           aggregate.ID().Bytes(),
			Position:          position,
			ProductID:         item.ProductID().Bytes(),
			Quantity:          item.Quantity(),
			UnitPriceCents:    item.UnitPriceCents(),
			Status:            &status,
			DeliveredAt:       item.DeliveredAt(),
			CancelledAt:       item.CancelledAt(),
			ReturnRequestedAt: item.ReturnRequestedAt(),
			ReturnReason:      item.ReturnReason(),
		})
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		CustomerName:  aggregate.CustomerName(),
		CustomerEmail: aggregate.CustomerEmail(),
		Status:        int(aggregate.Status()),
		TotalCents:    aggregate.TotalCents(),
		CreatedAt:     aggregate.CreatedAt(),
		Version:       aggregate.Version(),
		Items:         items,
	}
}

// toDomain reconstructs an order aggregate from database rows.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(dto.Items, func(i, j int) bool {
		return dto.Items[i].Position < dto.Items[j].Position
	})

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		customerID,
		dto.CustomerName,
		dto.CustomerEmail,
		items,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.Version,
	)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var status *order.Status
	if dto.Status != nil {
		s := order.Status(*dto.Status)
		status = &s
	}

	return order.RestoreItem(
		id,
		productID,
		dto.Quantity,
		dto.UnitPriceCents,
		status,
		dto.DeliveredAt,
		dto.CancelledAt,
		dto.ReturnRequestedAt,
		dto.ReturnReason,
	)
}
