package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Draft, order.Sent, order.Sale, order.Done, order.Cancelled} {
			require.NoError(t, s.Validate())
		}
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(99).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Draft, "draft"},
		{order.Sent, "sent"},
		{order.Sale, "sale"},
		{order.Done, "done"},
		{order.Cancelled, "cancel"},
		{order.Unknown, "unknown"},
		{order.Status(42), "unknown"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.status.String())
	}
}

func TestStatus_Confirm(t *testing.T) {
	t.Run("from_draft", func(t *testing.T) {
		next, err := order.Draft.Confirm()
		require.NoError(t, err)
		assert.Equal(t, order.Sale, next)
	})

	t.Run("from_sent", func(t *testing.T) {
		next, err := order.Sent.Confirm()
		require.NoError(t, err)
		assert.Equal(t, order.Sale, next)
	})

	t.Run("invalid_sources", func(t *testing.T) {
		for _, s := range []order.Status{order.Sale, order.Done, order.Cancelled, order.Unknown} {
			_, err := s.Confirm()
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrStateConflict)
		}
	})
}

func TestStatus_Send(t *testing.T) {
	next, err := order.Draft.Send()
	require.NoError(t, err)
	assert.Equal(t, order.Sent, next)

	_, err = order.Sale.Send()
	require.ErrorIs(t, err, errs.ErrStateConflict)
}

func TestStatus_Lock(t *testing.T) {
	next, err := order.Sale.Lock()
	require.NoError(t, err)
	assert.Equal(t, order.Done, next)

	for _, s := range []order.Status{order.Draft, order.Sent, order.Done, order.Cancelled} {
		_, err = s.Lock()
		require.ErrorIs(t, err, errs.ErrStateConflict)
	}
}

func TestStatus_Cancel(t *testing.T) {
	for _, s := range []order.Status{order.Draft, order.Sent, order.Sale} {
		next, err := s.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)
	}

	for _, s := range []order.Status{order.Done, order.Cancelled, order.Unknown} {
		_, err := s.Cancel()
		require.ErrorIs(t, err, errs.ErrStateConflict)
	}
}

func TestInvoiceStatus_String(t *testing.T) {
	assert.Equal(t, "no", order.InvoiceNone.String())
	assert.Equal(t, "to invoice", order.InvoiceToInvoice.String())
	assert.Equal(t, "invoiced", order.Invoiced.String())
	assert.Equal(t, "unknown", order.InvoiceStatusUnknown.String())
}

func TestInvoicePolicyFromString(t *testing.T) {
	t.Run("empty_string_defaults_to_order", func(t *testing.T) {
		policy, err := order.InvoicePolicyFromString("")
		require.NoError(t, err)
		assert.Equal(t, order.InvoiceOnOrder, policy)
	})

	t.Run("known_policies", func(t *testing.T) {
		policy, err := order.InvoicePolicyFromString("order")
		require.NoError(t, err)
		assert.Equal(t, order.InvoiceOnOrder, policy)

		policy, err = order.InvoicePolicyFromString("delivery")
		require.NoError(t, err)
		assert.Equal(t, order.InvoiceOnDelivery, policy)
	})

	t.Run("unknown_policy_rejected", func(t *testing.T) {
		_, err := order.InvoicePolicyFromString("subscription")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
