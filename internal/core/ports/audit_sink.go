package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// AuditSink receives structured transition events for logging and alerting.
// It is append-only and fire-and-forget: implementations must never block the
// caller meaningfully, and a failing sink never fails the transition that
// produced the event.
type AuditSink interface {
	Record(ctx context.Context, event order.TransitionEvent)
}
