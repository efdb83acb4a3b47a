package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func someLines() []commands.LineParams {
	return []commands.LineParams{
		{ProductID: kernel.NewUUID(), Qty: 5, UnitPrice: 10},
	}
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("valid_command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		partnerID := kernel.NewUUID()

		cmd, err := commands.NewCreateOrderCommand(orderID, partnerID, order.InvoiceOnOrder, someLines())

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.PartnerID().IsEqual(partnerID))
		assert.Len(t, cmd.Lines(), 1)
	})

	t.Run("requires_order_id", func(t *testing.T) {
		var orderID kernel.UUID
		_, err := commands.NewCreateOrderCommand(orderID, kernel.NewUUID(), order.InvoiceOnOrder, someLines())
		require.Error(t, err)
	})

	t.Run("requires_partner_id", func(t *testing.T) {
		var partnerID kernel.UUID
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), partnerID, order.InvoiceOnOrder, someLines())
		require.Error(t, err)
	})

	t.Run("requires_lines", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder, nil)
		require.ErrorIs(t, err, commands.ErrOrderLinesAreRequired)
	})

	t.Run("rejects_invalid_policy", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
			order.InvoicePolicyUnknown, someLines())
		require.Error(t, err)
	})

	t.Run("zero_value_command_fails_validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.Error(t, cmd.Validate())
	})
}

func TestNewFulfillOrderCommand(t *testing.T) {
	t.Run("valid_command", func(t *testing.T) {
		productID := kernel.NewUUID()
		qtyDone := -2.0
		lines := []commands.FulfillLineParams{
			{LineParams: commands.LineParams{ProductID: productID, Qty: 5, UnitPrice: 10}, QtyDone: &qtyDone},
			{LineParams: commands.LineParams{ProductID: kernel.NewUUID(), Qty: 3, UnitPrice: 4}},
		}

		cmd, err := commands.NewFulfillOrderCommand(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder, lines)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Len(t, cmd.LineParams(), 2)

		instructed := cmd.Instructed()
		require.Len(t, instructed, 1)
		assert.InEpsilon(t, -2.0, instructed[productID], 1e-9)
	})

	t.Run("requires_lines", func(t *testing.T) {
		_, err := commands.NewFulfillOrderCommand(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder, nil)
		require.ErrorIs(t, err, commands.ErrOrderLinesAreRequired)
	})
}

func TestNewUpdateOrderCommand(t *testing.T) {
	t.Run("partner_change_only", func(t *testing.T) {
		cmd, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), nil)

		require.NoError(t, err)
		assert.True(t, cmd.HasPartner())
		assert.Empty(t, cmd.NewLines())
	})

	t.Run("lines_only", func(t *testing.T) {
		var partnerID kernel.UUID
		cmd, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), partnerID, someLines())

		require.NoError(t, err)
		assert.False(t, cmd.HasPartner())
		assert.Len(t, cmd.NewLines(), 1)
	})

	t.Run("empty_update_rejected", func(t *testing.T) {
		var partnerID kernel.UUID
		_, err := commands.NewUpdateOrderCommand(kernel.NewUUID(), partnerID, nil)
		require.ErrorIs(t, err, commands.ErrNothingToUpdate)
	})
}

func TestNewDeleteOrderCommand(t *testing.T) {
	cmd, err := commands.NewDeleteOrderCommand(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	var orderID kernel.UUID
	_, err = commands.NewDeleteOrderCommand(orderID)
	require.Error(t, err)
}
