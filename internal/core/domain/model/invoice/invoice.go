package invoice

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrInvoiceIsNotConstructed is returned when an Invoice instance was
	// not created through its factory methods.
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoiceFromOrder constructor")

	// ErrOrderNotBillable is returned when an invoice is created from an
	// order that is not eligible for invoicing.
	ErrOrderNotBillable = errors.New("order is not eligible for invoicing")
)

// Status represents the lifecycle state of an invoice.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusDraft is the initial status of a freshly created invoice.
	StatusDraft

	// StatusPosted indicates the invoice has been posted. Final state.
	StatusPosted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		StatusDraft:   "draft",
		StatusPosted:  "posted",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != StatusDraft && s != StatusPosted {
		return errs.NewValueIsInvalidErrorWithCause("invoice status is invalid",
			fmt.Errorf("%d is not a valid invoice status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Invoice represents a customer invoice derived from a sales order.
type Invoice struct {
	id          kernel.UUID
	orderID     kernel.UUID
	partnerID   kernel.UUID
	amountTotal float64
	status      Status

	guard guard.ConstructorGuard
}

// NewInvoiceFromOrder creates a draft Invoice for a billable order. The
// amount is taken from the order's current total.
func NewInvoiceFromOrder(id kernel.UUID, o *order.Order) (*Invoice, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.InvoiceStatus() != order.InvoiceToInvoice {
		return nil, ErrOrderNotBillable
	}

	inv := &Invoice{
		status: StatusDraft,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setOrderID(o.ID()),
		inv.setPartnerID(o.PartnerID()),
	); err != nil {
		return nil, err
	}

	inv.amountTotal = o.AmountTotal()
	return inv, nil
}

// RestoreInvoice reconstructs an Invoice from persistence.
func RestoreInvoice(
	id kernel.UUID,
	orderID kernel.UUID,
	partnerID kernel.UUID,
	amountTotal float64,
	status Status,
) (*Invoice, error) {
	inv := &Invoice{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setOrderID(orderID),
		inv.setPartnerID(partnerID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	inv.amountTotal = amountTotal
	inv.status = status
	return inv, nil
}

// Validate ensures the Invoice instance was properly constructed.
func (inv *Invoice) Validate() error {
	if inv == nil {
		return ErrInvoiceIsNotConstructed
	}
	return inv.guard.Validate(ErrInvoiceIsNotConstructed)
}

// ID returns the invoice's unique identifier.
func (inv *Invoice) ID() kernel.UUID {
	return inv.id
}

// OrderID returns the identifier of the invoiced order.
func (inv *Invoice) OrderID() kernel.UUID {
	return inv.orderID
}

// PartnerID returns the billed partner's identifier.
func (inv *Invoice) PartnerID() kernel.UUID {
	return inv.partnerID
}

// AmountTotal returns the invoiced amount.
func (inv *Invoice) AmountTotal() float64 {
	return inv.amountTotal
}

// Status returns the current lifecycle status.
func (inv *Invoice) Status() Status {
	return inv.status
}

// Post transitions the invoice from StatusDraft to StatusPosted.
func (inv *Invoice) Post() error {
	if inv.status != StatusDraft {
		return errs.NewStateConflictError("invoice", inv.id.String(), inv.status.String(), "post")
	}

	inv.status = StatusPosted
	return nil
}

func (inv *Invoice) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	inv.id = id
	return nil
}

func (inv *Invoice) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order ID", err)
	}
	inv.orderID = orderID
	return nil
}

func (inv *Invoice) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("partner ID", err)
	}
	inv.partnerID = partnerID
	return nil
}
