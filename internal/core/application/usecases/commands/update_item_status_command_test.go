package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateItemStatusCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	t.Run("should create valid command", func(t *testing.T) {
		cmd, err := commands.NewUpdateItemStatusCommand(orderID, itemID, order.Shipped, "admin", "express")

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, itemID, cmd.ItemID())
		assert.Equal(t, order.Shipped, cmd.Requested())
		assert.Equal(t, "admin", cmd.Actor())
		assert.Equal(t, "express", cmd.Reason())
	})

	t.Run("should reject unconstructed order id", func(t *testing.T) {
		_, err := commands.NewUpdateItemStatusCommand(kernel.UUID{}, itemID, order.Shipped, "admin", "")
		require.Error(t, err)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := commands.NewUpdateItemStatusCommand(orderID, itemID, order.Status(99), "admin", "")
		require.Error(t, err)
	})

	t.Run("should reject missing actor", func(t *testing.T) {
		_, err := commands.NewUpdateItemStatusCommand(orderID, itemID, order.Shipped, "", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail validation when created without constructor", func(t *testing.T) {
		var cmd commands.UpdateItemStatusCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateItemStatusCommandIsNotConstructed)
	})
}
