package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrUpdateItemStatusCommandIsNotConstructed = errors.New(
	"UpdateItemStatusCommand must be created via NewUpdateItemStatusCommand constructor",
)

// UpdateItemStatusCommand represents a request to move one order item to a
// new status: which order and item, the requested status, the actor issuing
// the request (admin console or customer self-service), and an optional
// reason, meaningful for return requests.
//
// Example:
//
//	status, err := order.ParseStatus("Shipped")
//	if err != nil {
//	    return err // InvalidStatusValue, a client error
//	}
//	cmd, err := NewUpdateItemStatusCommand(orderID, itemID, status, "admin", "")
type UpdateItemStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	itemID    kernel.UUID
	requested order.Status
	actor     string
	reason    string

	guard guard.ConstructorGuard
}

// NewUpdateItemStatusCommand creates a command for one item status
// transition. Validates identifiers, that the requested status belongs to
// the closed enumeration, and that an actor is named.
func NewUpdateItemStatusCommand(
	orderID, itemID kernel.UUID,
	requested order.Status,
	actor, reason string,
) (UpdateItemStatusCommand, error) {
	cmd := UpdateItemStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setRequested(requested),
		cmd.setActor(actor),
	); err != nil {
		return UpdateItemStatusCommand{}, err
	}

	cmd.reason = reason
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemStatusCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c UpdateItemStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the target item identifier.
func (c UpdateItemStatusCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Requested returns the requested status.
func (c UpdateItemStatusCommand) Requested() order.Status {
	return c.requested
}

// Actor returns who issued the request.
func (c UpdateItemStatusCommand) Actor() string {
	return c.actor
}

// Reason returns the optional reason text.
func (c UpdateItemStatusCommand) Reason() string {
	return c.reason
}

func (c *UpdateItemStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateItemStatusCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *UpdateItemStatusCommand) setRequested(requested order.Status) error {
	if err := requested.Validate(); err != nil {
		return err
	}
	c.requested = requested
	return nil
}

func (c *UpdateItemStatusCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	c.actor = actor
	return nil
}
