package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// maxTransitionAttempts bounds reload-and-revalidate retries on version
// conflicts. A conflicting writer changed the order between our read and
// write; the retry revalidates the request against the new state, so a
// concurrent terminal transition is never silently reverted.
const maxTransitionAttempts = 3

// UpdateItemStatusCommandHandler orchestrates one item status transition:
// load the order, apply the validated transition through the aggregate,
// persist the whole order atomically, enqueue a refund when the transition is
// refund-eligible, and hand the resulting event to the audit sink.
//
// The refund enqueue shares the transaction with the status write; the
// actual wallet credit happens asynchronously and its failure never rolls
// back the transition. The audit record is emitted only after a successful
// commit and cannot fail the operation.
type UpdateItemStatusCommandHandler struct {
	uowFactory UoWFactory
	auditSink  ports.AuditSink
	policy     order.RefundPolicy
}

// NewUpdateItemStatusCommandHandler creates a handler for item status
// transitions.
func NewUpdateItemStatusCommandHandler(
	uowFactory UoWFactory,
	auditSink ports.AuditSink,
	policy order.RefundPolicy,
) UpdateItemStatusCommandHandler {
	return UpdateItemStatusCommandHandler{
		uowFactory: uowFactory,
		auditSink:  auditSink,
		policy:     policy,
	}
}

// Handle processes the transition command and returns the applied event.
//
// Client errors (order or item not found, invalid or no-op transition) pass
// through unchanged for the inbound adapter to classify. Version conflicts
// are retried against the reloaded aggregate up to maxTransitionAttempts
// times; persistent conflict surfaces as a version error.
func (h UpdateItemStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateItemStatusCommand,
) (order.TransitionEvent, error) {
	if err := cmd.Validate(); err != nil {
		return order.TransitionEvent{}, err
	}

	var lastErr error
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		event, err := h.apply(ctx, cmd)
		if err == nil {
			h.auditSink.Record(ctx, event)
			return event, nil
		}
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return order.TransitionEvent{}, err
		}
		lastErr = err
	}

	return order.TransitionEvent{}, errs.NewVersionIsInvalidErrorWithCause(
		"order",
		fmt.Errorf("transition lost %d races on order %s: %w",
			maxTransitionAttempts, cmd.OrderID(), lastErr),
	)
}

// apply runs one load-mutate-save attempt in its own transaction.
func (h UpdateItemStatusCommandHandler) apply(
	ctx context.Context,
	cmd UpdateItemStatusCommand,
) (order.TransitionEvent, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.TransitionEvent{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return order.TransitionEvent{}, err
	}

	event, err := aggregate.ApplyTransition(order.TransitionRequest{
		ItemID:    cmd.ItemID(),
		Requested: cmd.Requested(),
		Actor:     cmd.Actor(),
		Reason:    cmd.Reason(),
	}, h.policy, time.Now().UTC())
	if err != nil {
		return order.TransitionEvent{}, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return order.TransitionEvent{}, err
	}

	if event.RefundDue() {
		refund := ports.PendingRefund{
			ID:          kernel.NewUUID(),
			OrderID:     event.OrderID,
			ItemID:      event.ItemID,
			CustomerID:  aggregate.CustomerID(),
			AmountCents: event.RefundAmountCents,
			Reason:      event.Reason,
			EnqueuedAt:  event.OccurredAt,
		}
		if err = uow.RefundOutbox().Enqueue(ctx, refund); err != nil {
			return order.TransitionEvent{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return order.TransitionEvent{}, err
	}

	return event, nil
}
