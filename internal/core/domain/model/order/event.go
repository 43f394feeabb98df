package order

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// TransitionEvent captures one applied status transition. It is handed to the
// audit sink and drives refund coordination; it is not persisted as an entity.
type TransitionEvent struct {
	OrderID    kernel.UUID
	ItemID     kernel.UUID
	From       Status
	To         Status
	Actor      string
	Reason     string
	OccurredAt time.Time

	// RefundAmountCents is the amount to credit back to the customer wallet,
	// or zero when the transition is not refund-eligible.
	RefundAmountCents int64
}

// RefundDue reports whether the transition requires notifying the refund
// collaborator.
func (e TransitionEvent) RefundDue() bool {
	return e.RefundAmountCents > 0
}
