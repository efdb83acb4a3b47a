package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrFulfillOrderCommandIsNotConstructed = errors.New(
	"FulfillOrderCommand must be created via NewFulfillOrderCommand constructor",
)

// FulfillLineParams extends LineParams with a per-line delivery instruction.
// QtyDone overrides the delivered quantity for the line's product: a
// non-negative value records a partial delivery, a negative value records a
// full delivery and flags that many units for return. Nil means full
// delivery.
type FulfillLineParams struct {
	LineParams
	QtyDone *float64
}

// FulfillOrderCommand represents a request to run the complete fulfillment
// workflow: create an order, confirm it, deliver its picking and post the
// invoice in one call.
//
// Example:
//
//	cmd, err := NewFulfillOrderCommand(kernel.NewUUID(), partnerID, order.InvoiceOnOrder, lines)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvoiceGate) {
//	    // delivery incomplete, no invoice was created
//	}
type FulfillOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID
	policy    order.InvoicePolicy
	lines     []FulfillLineParams

	guard guard.ConstructorGuard
}

// NewFulfillOrderCommand creates a command to fulfill a new sales order.
func NewFulfillOrderCommand(
	orderID kernel.UUID,
	partnerID kernel.UUID,
	policy order.InvoicePolicy,
	lines []FulfillLineParams,
) (FulfillOrderCommand, error) {
	cmd := FulfillOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartnerID(partnerID),
		cmd.setPolicy(policy),
		cmd.setLines(lines),
	); err != nil {
		return FulfillOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FulfillOrderCommand) Validate() error {
	return c.guard.Validate(ErrFulfillOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c FulfillOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the owning partner's identifier.
func (c FulfillOrderCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Policy returns the order's invoicing policy.
func (c FulfillOrderCommand) Policy() order.InvoicePolicy {
	return c.policy
}

// Lines returns the requested order lines with delivery instructions.
func (c FulfillOrderCommand) Lines() []FulfillLineParams {
	return c.lines
}

// LineParams returns the order line data without delivery instructions.
func (c FulfillOrderCommand) LineParams() []LineParams {
	params := make([]LineParams, 0, len(c.lines))
	for _, line := range c.lines {
		params = append(params, line.LineParams)
	}
	return params
}

// Instructed returns the per-product delivery instructions keyed by product
// identifier. Only lines with an explicit QtyDone appear in the map.
func (c FulfillOrderCommand) Instructed() map[kernel.UUID]float64 {
	instructed := make(map[kernel.UUID]float64)
	for _, line := range c.lines {
		if line.QtyDone != nil {
			instructed[line.ProductID] = *line.QtyDone
		}
	}
	return instructed
}

func (c *FulfillOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *FulfillOrderCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *FulfillOrderCommand) setPolicy(policy order.InvoicePolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	c.policy = policy
	return nil
}

func (c *FulfillOrderCommand) setLines(lines []FulfillLineParams) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	c.lines = lines
	return nil
}
