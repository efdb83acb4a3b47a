package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// InvoiceStatus represents the invoice eligibility derived for an order:
// nothing to invoice, ready to invoice, or already invoiced.
type InvoiceStatus int

const (
	// InvoiceStatusUnknown represents an invalid or undefined eligibility.
	InvoiceStatusUnknown InvoiceStatus = iota

	// InvoiceNone means the order has nothing to invoice. Orders with a zero
	// amount stay here, and so do delivery-policy orders with nothing
	// delivered yet.
	InvoiceNone

	// InvoiceToInvoice means the order is billable and awaiting an invoice.
	InvoiceToInvoice

	// Invoiced means an invoice has been created for the order.
	Invoiced
)

func getInvoiceStatusStrings() map[InvoiceStatus]string {
	return map[InvoiceStatus]string{
		InvoiceStatusUnknown: "unknown",
		InvoiceNone:          "no",
		InvoiceToInvoice:     "to invoice",
		Invoiced:             "invoiced",
	}
}

// Validate checks if the InvoiceStatus value is valid.
func (s InvoiceStatus) Validate() error {
	if s != InvoiceNone && s != InvoiceToInvoice && s != Invoiced {
		return errs.NewValueIsInvalidErrorWithCause("invoice status is invalid",
			fmt.Errorf("%d is not a valid invoice status", s))
	}
	return nil
}

// String returns the wire-format name of the eligibility
// ("no", "to invoice", "invoiced").
func (s InvoiceStatus) String() string {
	if str, ok := getInvoiceStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// InvoicePolicy determines when a confirmed order becomes billable.
type InvoicePolicy int

const (
	// InvoicePolicyUnknown represents an invalid or undefined policy.
	InvoicePolicyUnknown InvoicePolicy = iota

	// InvoiceOnOrder makes the order billable as soon as it is confirmed.
	// This is the default policy.
	InvoiceOnOrder

	// InvoiceOnDelivery makes the order billable only once a delivered
	// quantity has been recorded against it.
	InvoiceOnDelivery
)

func getInvoicePolicyStrings() map[InvoicePolicy]string {
	return map[InvoicePolicy]string{
		InvoicePolicyUnknown: "unknown",
		InvoiceOnOrder:       "order",
		InvoiceOnDelivery:    "delivery",
	}
}

// InvoicePolicyFromString parses a wire-format policy name.
// The empty string maps to the default policy, InvoiceOnOrder.
func InvoicePolicyFromString(s string) (InvoicePolicy, error) {
	switch s {
	case "", "order":
		return InvoiceOnOrder, nil
	case "delivery":
		return InvoiceOnDelivery, nil
	default:
		return InvoicePolicyUnknown, errs.NewValueIsInvalidErrorWithCause("invoice policy is invalid",
			fmt.Errorf("%q is not a valid invoice policy", s))
	}
}

// Validate checks if the InvoicePolicy value is valid.
func (p InvoicePolicy) Validate() error {
	if p != InvoiceOnOrder && p != InvoiceOnDelivery {
		return errs.NewValueIsInvalidErrorWithCause("invoice policy is invalid",
			fmt.Errorf("%d is not a valid invoice policy", p))
	}
	return nil
}

// String returns the wire-format name of the policy ("order", "delivery").
func (p InvoicePolicy) String() string {
	if str, ok := getInvoicePolicyStrings()[p]; ok {
		return str
	}
	return "unknown"
}
