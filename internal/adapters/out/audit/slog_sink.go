// Package audit implements the transition audit sink over structured
// logging. The sink is append-only and advisory: it never blocks the caller
// meaningfully and never fails the transition that produced the event.
package audit

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
)

// SlogSink records transition events as structured log entries.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates an audit sink writing through the given logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{
		logger: logger.With("component", "audit"),
	}
}

// Record emits one transition event. Always succeeds from the caller's
// perspective.
func (s *SlogSink) Record(ctx context.Context, event order.TransitionEvent) {
	s.logger.InfoContext(ctx, "item status transition",
		"order_id", event.OrderID.String(),
		"item_id", event.ItemID.String(),
		"from", event.From.String(),
		"to", event.To.String(),
		"actor", event.Actor,
		"reason", event.Reason,
		"occurred_at", event.OccurredAt,
		"refund_cents", event.RefundAmountCents,
	)
}
