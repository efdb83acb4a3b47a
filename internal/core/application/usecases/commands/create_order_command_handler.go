package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order, confirms it and materializes its delivery pickings in a
// single transaction.
type CreateOrderCommandHandler struct {
	uowFactory SalesUoWFactory
	planner    services.DeliveryPlanner
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a SalesUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(
	uowFactory SalesUoWFactory,
	planner services.DeliveryPlanner,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
	}
}

// Handle processes the order creation command.
// Uses a transaction to ensure the order and its pickings are persisted
// together or rolled back on error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := buildOrder(cmd.OrderID(), cmd.PartnerID(), cmd.Policy(), cmd.Lines())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = newOrder.Confirm(); err != nil {
		return err
	}

	newPicking, err := h.planner.PlanPickings(newOrder)
	if err != nil {
		return err
	}

	if err = uow.PickingRepository().Add(ctx, newPicking); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// buildOrder materializes an order aggregate from line parameters. Shared by
// the create and fulfill workflows.
func buildOrder(
	orderID kernel.UUID,
	partnerID kernel.UUID,
	policy order.InvoicePolicy,
	params []LineParams,
) (*order.Order, error) {
	lines := make([]*order.Line, 0, len(params))
	for _, p := range params {
		line, err := order.NewLine(kernel.NewUUID(), p.ProductID, p.Qty, p.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return order.NewOrder(orderID, partnerID, policy, lines)
}
