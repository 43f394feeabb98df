package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// PendingRefund is one queued refund awaiting delivery to the refund
// collaborator. Rows are enqueued in the same transaction as the status
// change that made them due, and drained asynchronously with retries.
type PendingRefund struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	ItemID      kernel.UUID
	CustomerID  kernel.UUID
	AmountCents int64
	Reason      string
	Attempts    int
	EnqueuedAt  time.Time
}

// RefundOutbox is the append-only queue of refunds owed to customers.
type RefundOutbox interface {
	// Enqueue records a refund as due. Called inside the transaction that
	// persists the triggering status change.
	Enqueue(ctx context.Context, refund PendingRefund) error

	// GetPending returns up to limit refunds that have not completed yet,
	// oldest first.
	GetPending(ctx context.Context, limit int) ([]PendingRefund, error)

	// MarkCompleted removes a refund from the pending set after successful
	// delivery to the refund collaborator.
	MarkCompleted(ctx context.Context, id kernel.UUID) error

	// MarkFailed increments the attempt counter after a failed delivery so
	// the refund is retried later.
	MarkFailed(ctx context.Context, id kernel.UUID) error
}

// RefundService is the payment/wallet collaborator crediting a customer in
// response to a return or cancellation. It is invoked only after the
// triggering transition has been durably persisted; failures are retried
// independently and never roll back the status change.
type RefundService interface {
	Refund(ctx context.Context, refund PendingRefund) error
}
