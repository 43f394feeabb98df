package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is an order line item. It is owned exclusively by its Order and is
// never referenced independently: all mutation goes through the aggregate.
//
// An item is created in Placed status when its order is created and is never
// deleted, only transitioned until it reaches a terminal status. One optional
// timestamp exists per notable transition (delivered, cancelled, return
// requested); at most one of them is stamped per transition, according to the
// effect table.
type Item struct {
	id             kernel.UUID
	productID      kernel.UUID
	quantity       int
	unitPriceCents int64
	status         Status

	deliveredAt       *time.Time
	cancelledAt       *time.Time
	returnRequestedAt *time.Time
	returnReason      string

	isConstructed bool
}

// NewItem creates a line item in Placed status.
// Quantity must be positive and unit price non-negative.
func NewItem(id, productID kernel.UUID, quantity int, unitPriceCents int64) (*Item, error) {
	item := &Item{
		status:        Placed,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPriceCents),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an item from persistence. A nil status is
// normalized to Placed here and nowhere else: legacy records may lack an
// explicit status field, and this is the single conversion point for them.
func RestoreItem(
	id, productID kernel.UUID,
	quantity int,
	unitPriceCents int64,
	status *Status,
	deliveredAt, cancelledAt, returnRequestedAt *time.Time,
	returnReason string,
) (*Item, error) {
	item, err := NewItem(id, productID, quantity, unitPriceCents)
	if err != nil {
		return nil, err
	}

	normalized := normalizeStatus(status)
	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	item.status = normalized
	item.deliveredAt = deliveredAt
	item.cancelledAt = cancelledAt
	item.returnRequestedAt = returnRequestedAt
	item.returnReason = returnReason
	return item, nil
}

// normalizeStatus maps an absent persisted status to Placed.
func normalizeStatus(status *Status) Status {
	if status == nil {
		return Placed
	}
	return *status
}

// Validate ensures the item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item identifier, unique within its order.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the catalog product reference.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPriceCents returns the unit price in cents.
func (i *Item) UnitPriceCents() int64 {
	return i.unitPriceCents
}

// AmountCents returns the paid amount for the line: quantity times unit price.
// This is the amount credited back on a refund-eligible transition.
func (i *Item) AmountCents() int64 {
	return int64(i.quantity) * i.unitPriceCents
}

// Status returns the current fulfillment status.
func (i *Item) Status() Status {
	return i.status
}

// DeliveredAt returns when the item was delivered, or nil.
func (i *Item) DeliveredAt() *time.Time {
	return i.deliveredAt
}

// CancelledAt returns when the item was cancelled, or nil.
func (i *Item) CancelledAt() *time.Time {
	return i.cancelledAt
}

// ReturnRequestedAt returns when a return was requested, or nil.
func (i *Item) ReturnRequestedAt() *time.Time {
	return i.returnRequestedAt
}

// ReturnReason returns the reason supplied with a return request, if any.
func (i *Item) ReturnReason() string {
	return i.returnReason
}

// applyTransition validates and applies a status change, stamping the
// timestamp the effect table assigns to the target status. Called only by
// the owning Order aggregate.
func (i *Item) applyTransition(requested Status, reason string, now time.Time) error {
	if err := ValidateTransition(i.status, requested); err != nil {
		return err
	}

	i.status = requested

	switch transitionEffects()[requested].slot {
	case deliveredAtSlot:
		i.deliveredAt = &now
	case cancelledAtSlot:
		i.cancelledAt = &now
	case returnRequestedAtSlot:
		i.returnRequestedAt = &now
		i.returnReason = reason
	case noTimestamp:
	}

	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPriceCents int64) error {
	if unitPriceCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitPriceCents",
			fmt.Errorf("%d is negative", unitPriceCents),
		)
	}
	i.unitPriceCents = unitPriceCents
	return nil
}
