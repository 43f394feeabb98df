package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNeedsItems = errors.New("order needs at least one item")
)

// ItemSpec describes one line item of an order being created.
type ItemSpec struct {
	ProductID      kernel.UUID
	Quantity       int
	UnitPriceCents int64
}

// CreateOrderCommand represents a request to register a new customer order.
// Items start their lifecycle in Placed status.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID,
//	    "Ada Lovelace", "ada@example.com",
//	    []ItemSpec{{ProductID: productID, Quantity: 2, UnitPriceCents: 1500}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	customerName  string
	customerEmail string
	items         []ItemSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers, customer details and that at least one item with a
// positive quantity is present.
func NewCreateOrderCommand(
	orderID, customerID kernel.UUID,
	customerName, customerEmail string,
	items []ItemSpec,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setCustomerName(customerName),
		cmd.setCustomerEmail(customerEmail),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being created.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the owning customer reference.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CustomerName returns the customer display name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerEmail returns the customer email address.
func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// Items returns the line item specifications.
func (c CreateOrderCommand) Items() []ItemSpec {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setCustomerEmail(customerEmail string) error {
	if customerEmail == "" {
		return errs.NewValueIsRequiredError("customerEmail")
	}
	c.customerEmail = customerEmail
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemSpec) error {
	if len(items) == 0 {
		return ErrOrderNeedsItems
	}

	for _, spec := range items {
		if err := spec.ProductID.Validate(); err != nil {
			return err
		}
		if spec.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("quantity", spec.Quantity, 1, int(^uint(0)>>1))
		}
		if spec.UnitPriceCents < 0 {
			return errs.NewValueIsInvalidError("unitPriceCents")
		}
	}

	c.items = items
	return nil
}
