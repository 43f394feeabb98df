package order_test

import (
	"fmt"
	"testing"

	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition_NoOp(t *testing.T) {
	for _, s := range allStatuses() {
		t.Run(s.String(), func(t *testing.T) {
			err := order.ValidateTransition(s, s)

			require.Error(t, err)
			require.ErrorIs(t, err, order.ErrNoOpTransition)
		})
	}
}

func TestValidateTransition_UnknownCurrentStatus(t *testing.T) {
	err := order.ValidateTransition(order.Unknown, order.Shipped)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrUnknownStatus)

	err = order.ValidateTransition(order.Status(99), order.Cancelled)
	require.ErrorIs(t, err, order.ErrUnknownStatus)
}

func TestValidateTransition_CancellationOverride(t *testing.T) {
	t.Run("should accept cancellation from every non-terminal status", func(t *testing.T) {
		for _, s := range allStatuses() {
			if s.IsTerminal() {
				continue
			}
			require.NoError(t, order.ValidateTransition(s, order.Cancelled), s.String())
		}
	})

	t.Run("should accept cancellation from ReturnRequested", func(t *testing.T) {
		// A pending return may still be cancelled; the return is abandoned.
		require.NoError(t, order.ValidateTransition(order.ReturnRequested, order.Cancelled))
	})

	t.Run("should reject cancellation from terminal statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Delivered, order.Returned, order.ReturnDeclined} {
			err := order.ValidateTransition(s, order.Cancelled)

			require.Error(t, err, s.String())
			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestValidateTransition_GraphMembership(t *testing.T) {
	t.Run("should accept every declared edge", func(t *testing.T) {
		for _, from := range allStatuses() {
			for _, to := range from.NextStatuses() {
				require.NoError(t, order.ValidateTransition(from, to),
					fmt.Sprintf("%s -> %s", from, to))
			}
		}
	})

	t.Run("should reject every pair outside the graph except cancellation", func(t *testing.T) {
		for _, from := range allStatuses() {
			reachable := map[order.Status]bool{}
			for _, to := range from.NextStatuses() {
				reachable[to] = true
			}

			for _, to := range allStatuses() {
				if to == from || to == order.Cancelled || reachable[to] {
					continue
				}

				err := order.ValidateTransition(from, to)

				require.Error(t, err, fmt.Sprintf("%s -> %s", from, to))
				require.ErrorIs(t, err, order.ErrInvalidTransition)
			}
		}
	})

	t.Run("terminal statuses never accept any transition", func(t *testing.T) {
		for _, from := range allStatuses() {
			if !from.IsTerminal() {
				continue
			}
			for _, to := range allStatuses() {
				if to == from {
					continue
				}
				require.Error(t, order.ValidateTransition(from, to),
					fmt.Sprintf("%s -> %s", from, to))
			}
		}
	})
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := order.ValidateTransition(order.Shipped, order.Processing)

	require.Error(t, err)
	assert.Equal(t, "cannot change status from 'Shipped' to 'Processing'", err.Error())
}

func TestValidateTransition_BackwardMoves(t *testing.T) {
	cases := []struct{ from, to order.Status }{
		{order.Shipped, order.Placed},
		{order.Delivered, order.Shipped},
		{order.OutForDelivery, order.Processing},
		{order.Returned, order.ReturnRequested},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_to_%s", tc.from, tc.to), func(t *testing.T) {
			require.ErrorIs(t, order.ValidateTransition(tc.from, tc.to), order.ErrInvalidTransition)
		})
	}
}
