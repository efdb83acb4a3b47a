package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("order lines are required")
)

// LineParams carries the data for a single order line in a command.
// Qty is signed: a negative quantity marks the line's delivered units for
// return during fulfillment.
type LineParams struct {
	ProductID kernel.UUID
	Qty       float64
	UnitPrice float64
}

// CreateOrderCommand represents a request to create a new sales order in
// draft status.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, partnerID, order.InvoiceOnOrder, lines)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID
	policy    order.InvoicePolicy
	lines     []LineParams

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new sales order.
// Validates identifiers, the invoice policy and that at least one line is
// present. Line-level values are validated by the order aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	partnerID kernel.UUID,
	policy order.InvoicePolicy,
	lines []LineParams,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartnerID(partnerID),
		cmd.setPolicy(policy),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the owning partner's identifier.
func (c CreateOrderCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Policy returns the order's invoicing policy.
func (c CreateOrderCommand) Policy() order.InvoicePolicy {
	return c.policy
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []LineParams {
	return c.lines
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *CreateOrderCommand) setPolicy(policy order.InvoicePolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	c.policy = policy
	return nil
}

func (c *CreateOrderCommand) setLines(lines []LineParams) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	c.lines = lines
	return nil
}
