package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, qty, price float64) *order.Line {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), qty, price)
	require.NoError(t, err)
	return line
}

func TestNewLine(t *testing.T) {
	t.Run("valid_line", func(t *testing.T) {
		id := kernel.NewUUID()
		productID := kernel.NewUUID()

		line, err := order.NewLine(id, productID, 5, 12.5)

		require.NoError(t, err)
		require.NoError(t, line.Validate())
		assert.True(t, line.ID().IsEqual(id))
		assert.True(t, line.ProductID().IsEqual(productID))
		assert.InEpsilon(t, 62.5, line.Amount(), 1e-9)
	})

	t.Run("negative_quantity_is_allowed", func(t *testing.T) {
		line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), -3, 10)

		require.NoError(t, err)
		assert.InEpsilon(t, -3.0, line.Qty(), 1e-9)
	})

	t.Run("zero_quantity_rejected", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 0, 10)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative_price_rejected", func(t *testing.T) {
		_, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 5, -1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_line_fails_validation", func(t *testing.T) {
		var line order.Line

		err := line.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrLineIsNotConstructed, err)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("valid_order", func(t *testing.T) {
		id := kernel.NewUUID()
		partnerID := kernel.NewUUID()
		lines := []*order.Line{mustLine(t, 5, 10), mustLine(t, 2, 4)}

		o, err := order.NewOrder(id, partnerID, order.InvoiceOnOrder, lines)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Draft, o.Status())
		assert.Equal(t, order.InvoiceNone, o.InvoiceStatus())
		assert.True(t, o.PartnerID().IsEqual(partnerID))
		assert.Len(t, o.Lines(), 2)
		assert.InEpsilon(t, 58.0, o.AmountTotal(), 1e-9)
		assert.Contains(t, o.Name(), "SO-")
	})

	t.Run("requires_partner", func(t *testing.T) {
		var partnerID kernel.UUID

		_, err := order.NewOrder(kernel.NewUUID(), partnerID, order.InvoiceOnOrder,
			[]*order.Line{mustLine(t, 5, 10)})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_lines", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrOrderHasNoLines)
	})

	t.Run("zero_value_order_fails_validation", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_Confirm(t *testing.T) {
	t.Run("order_policy_becomes_billable", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder,
			[]*order.Line{mustLine(t, 5, 10)})
		require.NoError(t, err)

		require.NoError(t, o.Confirm())

		assert.Equal(t, order.Sale, o.Status())
		assert.Equal(t, order.InvoiceToInvoice, o.InvoiceStatus())
	})

	t.Run("zero_amount_order_stays_not_billable", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder,
			[]*order.Line{mustLine(t, 5, 0)})
		require.NoError(t, err)

		require.NoError(t, o.Confirm())

		assert.Equal(t, order.Sale, o.Status())
		assert.Equal(t, order.InvoiceNone, o.InvoiceStatus())
	})

	t.Run("delivery_policy_stays_not_billable_until_delivery", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnDelivery,
			[]*order.Line{mustLine(t, 5, 10)})
		require.NoError(t, err)

		require.NoError(t, o.Confirm())
		assert.Equal(t, order.InvoiceNone, o.InvoiceStatus())

		o.RecordDelivery(5)
		assert.Equal(t, order.InvoiceToInvoice, o.InvoiceStatus())
	})

	t.Run("delivery_of_nothing_does_not_make_billable", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnDelivery,
			[]*order.Line{mustLine(t, 5, 10)})
		require.NoError(t, err)
		require.NoError(t, o.Confirm())

		o.RecordDelivery(0)

		assert.Equal(t, order.InvoiceNone, o.InvoiceStatus())
	})

	t.Run("confirm_twice_conflicts", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder,
			[]*order.Line{mustLine(t, 5, 10)})
		require.NoError(t, err)
		require.NoError(t, o.Confirm())

		err = o.Confirm()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestOrder_MarkInvoiced(t *testing.T) {
	t.Run("billable_order_becomes_invoiced", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder,
			[]*order.Line{mustLine(t, 5, 10)})
		require.NoError(t, err)
		require.NoError(t, o.Confirm())

		require.NoError(t, o.MarkInvoiced())

		assert.Equal(t, order.Invoiced, o.InvoiceStatus())
	})

	t.Run("not_billable_order_conflicts", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder,
			[]*order.Line{mustLine(t, 5, 0)})
		require.NoError(t, err)
		require.NoError(t, o.Confirm())

		err = o.MarkInvoiced()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrStateConflict)
	})
}

func TestOrder_AddLine(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder,
		[]*order.Line{mustLine(t, 5, 10)})
	require.NoError(t, err)

	require.NoError(t, o.AddLine(mustLine(t, 2, 3)))

	assert.Len(t, o.Lines(), 2)
	assert.InEpsilon(t, 56.0, o.AmountTotal(), 1e-9)

	var notConstructed order.Line
	require.Error(t, o.AddLine(&notConstructed))
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_persisted_state", func(t *testing.T) {
		id := kernel.NewUUID()
		partnerID := kernel.NewUUID()
		lines := []*order.Line{mustLine(t, 5, 10)}

		o, err := order.RestoreOrder(id, partnerID, "SO-custom", order.InvoiceOnOrder,
			lines, order.Sale, order.InvoiceToInvoice)

		require.NoError(t, err)
		assert.Equal(t, "SO-custom", o.Name())
		assert.Equal(t, order.Sale, o.Status())
		assert.Equal(t, order.InvoiceToInvoice, o.InvoiceStatus())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "SO-bad",
			order.InvoiceOnOrder, []*order.Line{mustLine(t, 5, 10)},
			order.Unknown, order.InvoiceNone)

		require.Error(t, err)
	})
}
