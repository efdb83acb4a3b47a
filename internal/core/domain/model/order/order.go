package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderHasNoLines is returned when an order is created without lines.
	ErrOrderHasNoLines = errors.New("order must have at least one line")
)

// Order represents a sales order. It is the aggregate root that manages the
// order lifecycle from quotation through confirmation to invoicing.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and partner reference
//   - Must own at least one line
//   - Status advances monotonically through explicit transition methods
//   - Invoice eligibility is derived, never assigned from outside
type Order struct {
	id            kernel.UUID
	partnerID     kernel.UUID
	name          string
	lines         []*Line
	status        Status
	invoicePolicy InvoicePolicy
	invoiceStatus InvoiceStatus

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Draft status with InvoiceNone eligibility.
// The order name is derived from the identifier ("SO-xxxxxxxx").
//
// Example:
//
//	line, _ := order.NewLine(kernel.NewUUID(), productID, 5, 10.0)
//	o, err := order.NewOrder(kernel.NewUUID(), partnerID, order.InvoiceOnOrder, []*order.Line{line})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, partnerID kernel.UUID, policy InvoicePolicy, lines []*Line) (*Order, error) {
	o := &Order{
		status:        Draft,
		invoiceStatus: InvoiceNone,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setPartnerID(partnerID),
		o.setInvoicePolicy(policy),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	o.name = fmt.Sprintf("SO-%.8s", id.String())
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, preserving its name,
// status and invoice eligibility.
func RestoreOrder(
	id kernel.UUID,
	partnerID kernel.UUID,
	name string,
	policy InvoicePolicy,
	lines []*Line,
	status Status,
	invoiceStatus InvoiceStatus,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setPartnerID(partnerID),
		o.setInvoicePolicy(policy),
		o.setLines(lines),
		status.Validate(),
		invoiceStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.name = name
	o.status = status
	o.invoiceStatus = invoiceStatus
	return o, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// PartnerID returns the owning partner's identifier.
func (o *Order) PartnerID() kernel.UUID {
	return o.partnerID
}

// Name returns the order's display name.
func (o *Order) Name() string {
	return o.name
}

// Lines returns the order's lines. The slice must not be mutated by callers;
// use AddLine to append.
func (o *Order) Lines() []*Line {
	return o.lines
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// InvoicePolicy returns the order's invoicing policy.
func (o *Order) InvoicePolicy() InvoicePolicy {
	return o.invoicePolicy
}

// InvoiceStatus returns the derived invoice eligibility.
func (o *Order) InvoiceStatus() InvoiceStatus {
	return o.invoiceStatus
}

// AmountTotal returns the sum of all line subtotals.
func (o *Order) AmountTotal() float64 {
	var total float64
	for _, line := range o.lines {
		total += line.Amount()
	}
	return total
}

// Confirm transitions the order to Sale and derives its invoice eligibility.
//
// With the InvoiceOnOrder policy a confirmed order with a positive amount is
// immediately billable ("to invoice"). With InvoiceOnDelivery the order stays
// at "no" until a delivered quantity is recorded. Zero-amount orders are
// never billable.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return errs.NewStateConflictError("order", o.id.String(), o.status.String(), "confirm")
	}

	o.status = newStatus
	if o.invoicePolicy == InvoiceOnOrder && o.AmountTotal() > 0 {
		o.invoiceStatus = InvoiceToInvoice
	}
	return nil
}

// RecordDelivery records that a quantity has been delivered for the order.
// Under the InvoiceOnDelivery policy this is what makes the order billable.
func (o *Order) RecordDelivery(qtyDelivered float64) {
	if o.invoicePolicy == InvoiceOnDelivery &&
		o.invoiceStatus == InvoiceNone &&
		qtyDelivered > 0 && o.AmountTotal() > 0 {
		o.invoiceStatus = InvoiceToInvoice
	}
}

// MarkInvoiced records that an invoice has been created for the order.
// The order must be billable ("to invoice").
func (o *Order) MarkInvoiced() error {
	if o.invoiceStatus != InvoiceToInvoice {
		return errs.NewStateConflictError("order", o.id.String(), o.invoiceStatus.String(), "invoice")
	}

	o.invoiceStatus = Invoiced
	return nil
}

// Cancel transitions the order to Cancelled.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return errs.NewStateConflictError("order", o.id.String(), o.status.String(), "cancel")
	}

	o.status = newStatus
	return nil
}

// SetPartner replaces the order's partner reference.
func (o *Order) SetPartner(partnerID kernel.UUID) error {
	return o.setPartnerID(partnerID)
}

// AddLine appends a line to the order. Lines are append-only; the update
// endpoint never rewrites existing lines.
func (o *Order) AddLine(line *Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	o.lines = append(o.lines, line)
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("partner ID", err)
	}
	o.partnerID = partnerID
	return nil
}

func (o *Order) setInvoicePolicy(policy InvoicePolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}
	o.invoicePolicy = policy
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	o.lines = lines
	return nil
}
