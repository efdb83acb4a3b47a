package invoice_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billableOrder(t *testing.T) *order.Order {
	t.Helper()

	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 5, 10)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder, []*order.Line{line})
	require.NoError(t, err)
	require.NoError(t, o.Confirm())
	return o
}

func TestNewInvoiceFromOrder(t *testing.T) {
	t.Run("billable_order", func(t *testing.T) {
		o := billableOrder(t)
		id := kernel.NewUUID()

		inv, err := invoice.NewInvoiceFromOrder(id, o)

		require.NoError(t, err)
		require.NoError(t, inv.Validate())
		assert.Equal(t, invoice.StatusDraft, inv.Status())
		assert.True(t, inv.OrderID().IsEqual(o.ID()))
		assert.True(t, inv.PartnerID().IsEqual(o.PartnerID()))
		assert.InEpsilon(t, 50.0, inv.AmountTotal(), 1e-9)
	})

	t.Run("not_billable_order_rejected", func(t *testing.T) {
		line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 5, 10)
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.InvoiceOnOrder, []*order.Line{line})
		require.NoError(t, err)

		_, err = invoice.NewInvoiceFromOrder(kernel.NewUUID(), o)

		require.ErrorIs(t, err, invoice.ErrOrderNotBillable)
	})

	t.Run("zero_value_invoice_fails_validation", func(t *testing.T) {
		var inv invoice.Invoice
		assert.Equal(t, invoice.ErrInvoiceIsNotConstructed, inv.Validate())
	})
}

func TestInvoice_Post(t *testing.T) {
	inv, err := invoice.NewInvoiceFromOrder(kernel.NewUUID(), billableOrder(t))
	require.NoError(t, err)

	require.NoError(t, inv.Post())
	assert.Equal(t, invoice.StatusPosted, inv.Status())

	err = inv.Post()
	require.ErrorIs(t, err, errs.ErrStateConflict)
}

func TestRestoreInvoice(t *testing.T) {
	t.Run("restores_persisted_state", func(t *testing.T) {
		inv, err := invoice.RestoreInvoice(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			42.5, invoice.StatusPosted)

		require.NoError(t, err)
		assert.Equal(t, invoice.StatusPosted, inv.Status())
		assert.InEpsilon(t, 42.5, inv.AmountTotal(), 1e-9)
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := invoice.RestoreInvoice(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			42.5, invoice.StatusUnknown)

		require.Error(t, err)
	})
}
