package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the fulfillment stage of an order item.
//
// The lifecycle forms a state machine:
//
//	Placed ──> Ordered ──> Processing ──> Shipped ──> OutForDelivery ──> Delivered
//	   │          │            │             │               │
//	   └──────────┴────────────┴─────────────┴───────────────┴──> Cancelled
//
//	ReturnRequested ──> Returned | ReturnDeclined
//
// Delivered, Cancelled, Returned and ReturnDeclined are terminal: no
// transition out of them is ever accepted. The graph is exposed through
// NextStatuses so that the transition validator and any display layer
// consult a single source of truth.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status of every item when its order is created.
	Placed

	// Ordered indicates the item has been confirmed against inventory.
	Ordered

	// Processing indicates the item is being prepared for shipment.
	Processing

	// Shipped indicates the item has left the warehouse.
	Shipped

	// OutForDelivery indicates the item is with the last-mile carrier.
	OutForDelivery

	// Delivered indicates the item reached the customer. Terminal.
	Delivered

	// Cancelled indicates the item was cancelled before delivery. Terminal.
	Cancelled

	// ReturnRequested indicates the customer asked to return a delivered item.
	ReturnRequested

	// Returned indicates the return was accepted and refunded. Terminal.
	Returned

	// ReturnDeclined indicates the return was rejected. Terminal.
	ReturnDeclined
)

// getStatusStrings returns the string representation of every Status value,
// including Unknown, for display and logging.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		Placed:          "Placed",
		Ordered:         "Ordered",
		Processing:      "Processing",
		Shipped:         "Shipped",
		OutForDelivery:  "OutForDelivery",
		Delivered:       "Delivered",
		Cancelled:       "Cancelled",
		ReturnRequested: "ReturnRequested",
		Returned:        "Returned",
		ReturnDeclined:  "ReturnDeclined",
	}
}

// getValidStatusStrings returns only the statuses of the closed enumeration.
// Unknown is excluded so it can never be parsed or persisted as valid.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:          "Placed",
		Ordered:         "Ordered",
		Processing:      "Processing",
		Shipped:         "Shipped",
		OutForDelivery:  "OutForDelivery",
		Delivered:       "Delivered",
		Cancelled:       "Cancelled",
		ReturnRequested: "ReturnRequested",
		Returned:        "Returned",
		ReturnDeclined:  "ReturnDeclined",
	}
}

// transitionGraph declares, for each status, the statuses directly reachable
// from it. Terminal statuses map to an empty set. Cancellation is reachable
// from more states than the graph encodes; that override lives in
// ValidateTransition, never here.
func transitionGraph() map[Status][]Status {
	return map[Status][]Status{
		Placed:          {Ordered, Processing, Shipped, Cancelled},
		Ordered:         {Processing, Shipped, Cancelled},
		Processing:      {Shipped, Cancelled},
		Shipped:         {OutForDelivery, Delivered, Cancelled},
		OutForDelivery:  {Delivered, Cancelled},
		Delivered:       {},
		Cancelled:       {},
		ReturnRequested: {Returned, ReturnDeclined},
		Returned:        {},
		ReturnDeclined:  {},
	}
}

// ParseStatus converts a status name to its Status value.
// Returns a ValueIsInvalidError for names outside the closed enumeration.
func ParseStatus(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", name),
	)
}

// Validate checks that the Status belongs to the closed enumeration.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, Returned, ReturnDeclined:
		return true
	default:
		return false
	}
}

// NextStatuses returns the statuses directly reachable from s according to
// the declared graph, excluding the cancellation override. Terminal statuses
// and statuses outside the enumeration yield an empty slice.
func (s Status) NextStatuses() []Status {
	next, ok := transitionGraph()[s]
	if !ok {
		return nil
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// canReach reports whether requested is a direct graph successor of s.
func (s Status) canReach(requested Status) bool {
	for _, next := range transitionGraph()[s] {
		if next == requested {
			return true
		}
	}
	return false
}
