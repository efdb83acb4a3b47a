package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
	ErrNothingToUpdate = errors.New("update must change the partner or add lines")
)

// UpdateOrderCommand represents a request to change an existing order. The
// partner can be replaced and lines can be appended; existing lines are
// never rewritten.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID kernel.UUID
	newLines  []LineParams

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to update an order. A zero-value
// partnerID leaves the partner unchanged; newLines may be empty when only
// the partner changes.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	partnerID kernel.UUID,
	newLines []LineParams,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setChanges(partnerID, newLines),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the replacement partner, zero when unchanged.
func (c UpdateOrderCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// HasPartner reports whether the command replaces the partner.
func (c UpdateOrderCommand) HasPartner() bool {
	return c.partnerID.Validate() == nil
}

// NewLines returns the lines to append.
func (c UpdateOrderCommand) NewLines() []LineParams {
	return c.newLines
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setChanges(partnerID kernel.UUID, newLines []LineParams) error {
	if partnerID.Validate() != nil && len(newLines) == 0 {
		return ErrNothingToUpdate
	}

	c.partnerID = partnerID
	c.newLines = newLines
	return nil
}
