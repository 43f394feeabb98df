package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// ErrOrderHasNoItems is returned when an order is constructed without line items.
var ErrOrderHasNoItems = errors.New("order must contain at least one item")

// Order is the aggregate root for a customer order. It owns its line items
// exclusively: every status transition goes through ApplyTransition so the
// transition policy, timestamping and refund eligibility are applied in one
// place, and the order-level status stays a pure derivation of item statuses.
//
// The aggregate is loaded, mutated and persisted as one unit. The version
// field supports optimistic concurrency at the persistence boundary; it is
// never touched by domain logic.
type Order struct {
	id            kernel.UUID
	customerID    kernel.UUID
	customerName  string
	customerEmail string
	items         []*Item
	status        Status
	totalCents    int64
	createdAt     time.Time
	version       int

	isConstructed bool
}

// TransitionRequest describes one requested item status change:
// which item, the target status, who asked, and an optional reason
// (meaningful for return requests).
type TransitionRequest struct {
	ItemID    kernel.UUID
	Requested Status
	Actor     string
	Reason    string
}

// NewOrder creates an order with its line items. Items keep whatever status
// they carry (freshly created items are Placed); the order-level status is
// derived from them. The monetary total is the sum of item amounts.
func NewOrder(
	id, customerID kernel.UUID,
	customerName, customerEmail string,
	items []*Item,
	now time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setCustomerName(customerName),
		o.setCustomerEmail(customerEmail),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.status = deriveStatus(o.items)
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its stored
// version for optimistic concurrency checks on the next write.
func RestoreOrder(
	id, customerID kernel.UUID,
	customerName, customerEmail string,
	items []*Item,
	status Status,
	createdAt time.Time,
	version int,
) (*Order, error) {
	o, err := NewOrder(id, customerID, customerName, customerEmail, items, createdAt)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	o.version = version
	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer reference.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CustomerName returns the customer display name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerEmail returns the customer email address.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// Items returns the ordered sequence of line items. The order of the slice
// matters for display, not semantics.
func (o *Order) Items() []*Item {
	return o.items
}

// Status returns the derived order-level status.
func (o *Order) Status() Status {
	return o.status
}

// TotalCents returns the monetary total of the order in cents.
func (o *Order) TotalCents() int64 {
	return o.totalCents
}

// CreatedAt returns the order creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the persisted aggregate version.
func (o *Order) Version() int {
	return o.version
}

// Item returns the line item with the given id, or an ObjectNotFoundError.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", itemID.String())
}

// HasPendingReturn reports whether the order or any of its items is in
// ReturnRequested status.
func (o *Order) HasPendingReturn() bool {
	if o.status == ReturnRequested {
		return true
	}
	for _, item := range o.items {
		if item.Status() == ReturnRequested {
			return true
		}
	}
	return false
}

// ApplyTransition applies one validated status transition to one item.
//
// On success the item status is mutated, exactly one timestamp is stamped
// according to the effect table, the order-level status is re-derived, and a
// TransitionEvent is returned for the caller to hand to the audit sink. When
// the target status is refund-eligible under the policy, the event carries
// the item's paid amount.
//
// The aggregate performs no persistence and no refunding itself; rejections
// leave the order completely unmodified.
func (o *Order) ApplyTransition(
	req TransitionRequest,
	policy RefundPolicy,
	now time.Time,
) (TransitionEvent, error) {
	if err := o.Validate(); err != nil {
		return TransitionEvent{}, err
	}
	if err := req.ItemID.Validate(); err != nil {
		return TransitionEvent{}, err
	}
	if err := req.Requested.Validate(); err != nil {
		return TransitionEvent{}, err
	}
	if req.Actor == "" {
		return TransitionEvent{}, errs.NewValueIsRequiredError("actor")
	}

	item, err := o.Item(req.ItemID)
	if err != nil {
		return TransitionEvent{}, err
	}

	from := item.Status()
	if err := item.applyTransition(req.Requested, req.Reason, now); err != nil {
		return TransitionEvent{}, err
	}

	o.status = deriveStatus(o.items)

	event := TransitionEvent{
		OrderID:    o.id,
		ItemID:     item.ID(),
		From:       from,
		To:         req.Requested,
		Actor:      req.Actor,
		Reason:     req.Reason,
		OccurredAt: now,
	}
	if policy.refundDue(req.Requested) {
		event.RefundAmountCents = item.AmountCents()
	}

	return event, nil
}

// deriveStatus computes the order-level status from item statuses.
//
// Rule: when all items agree, the order takes their status. Otherwise a
// pending return dominates; a fully terminal mix is Delivered when anything
// reached the customer (Delivered, Returned and ReturnDeclined all imply a
// completed delivery) and Cancelled otherwise; any other mix is in flight.
func deriveStatus(items []*Item) Status {
	allSame := true
	allTerminal := true
	anyReturnRequested := false
	anyDeliveredOnce := false

	for _, item := range items {
		s := item.Status()
		if s != items[0].Status() {
			allSame = false
		}
		if !s.IsTerminal() {
			allTerminal = false
		}
		if s == ReturnRequested {
			anyReturnRequested = true
		}
		if s == Delivered || s == Returned || s == ReturnDeclined {
			anyDeliveredOnce = true
		}
	}

	switch {
	case allSame:
		return items[0].Status()
	case anyReturnRequested:
		return ReturnRequested
	case allTerminal && anyDeliveredOnce:
		return Delivered
	case allTerminal:
		return Cancelled
	default:
		return Processing
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setCustomerEmail(customerEmail string) error {
	if customerEmail == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	o.customerEmail = customerEmail
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	var total int64
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total += item.AmountCents()
	}

	o.items = items
	o.totalCents = total
	return nil
}
