package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/orderlock"
)

// FulfillOrderResult carries the identifiers produced by a completed
// fulfillment workflow. InvoiceID is the zero UUID when the order was not
// eligible for invoicing.
type FulfillOrderResult struct {
	OrderID          kernel.UUID
	InvoiceID        kernel.UUID
	PickingIDs       []kernel.UUID
	ReturnPickingIDs []kernel.UUID
}

// FulfillOrderCommandHandler runs the complete fulfillment workflow. The
// workflow executes as consecutive transactions on a single unit of work:
// order creation, confirmation with picking materialization, delivery, and
// invoicing. Each committed phase stays committed; a later failure leaves
// the earlier phases' state in place.
//
// The delivery and invoicing phases are serialized per order through a keyed
// mutex, so a concurrent attempt on the same order cannot interleave between
// the delivery gate check and invoice creation.
type FulfillOrderCommandHandler struct {
	uowFactory UoWFactory
	planner    services.DeliveryPlanner
	locks      *orderlock.KeyedMutex
	metrics    *metrics.FulfillmentMetrics
}

// NewFulfillOrderCommandHandler creates a handler for the fulfillment
// workflow.
func NewFulfillOrderCommandHandler(
	uowFactory UoWFactory,
	planner services.DeliveryPlanner,
	locks *orderlock.KeyedMutex,
	fulfillmentMetrics *metrics.FulfillmentMetrics,
) FulfillOrderCommandHandler {
	return FulfillOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		locks:      locks,
		metrics:    fulfillmentMetrics,
	}
}

// Handle processes the fulfillment command and returns the identifiers of
// everything it created.
func (h *FulfillOrderCommandHandler) Handle(ctx context.Context, cmd FulfillOrderCommand) (FulfillOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return FulfillOrderResult{}, err
	}

	started := time.Now()

	result, err := h.fulfill(ctx, cmd)
	if err != nil {
		h.metrics.RecordFailure(failureReason(err))
		return FulfillOrderResult{}, err
	}

	h.metrics.RecordFulfilled(time.Since(started))
	return result, nil
}

func (h *FulfillOrderCommandHandler) fulfill(ctx context.Context, cmd FulfillOrderCommand) (FulfillOrderResult, error) {
	uow := h.uowFactory.Create()

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := h.createOrder(ctx, uow, cmd)
	if err != nil {
		return FulfillOrderResult{}, err
	}

	if err = h.confirmOrder(ctx, uow, o); err != nil {
		return FulfillOrderResult{}, err
	}

	// The delivery gate and invoice creation must not interleave with a
	// concurrent attempt on the same order.
	key := cmd.OrderID().String()
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	pickingIDs, returnIDs, err := h.deliver(ctx, uow, o, cmd.Instructed())
	if err != nil {
		return FulfillOrderResult{}, err
	}

	invoiceID, err := h.invoiceOrder(ctx, uow, cmd.OrderID())
	if err != nil {
		return FulfillOrderResult{}, err
	}

	return FulfillOrderResult{
		OrderID:          cmd.OrderID(),
		InvoiceID:        invoiceID,
		PickingIDs:       pickingIDs,
		ReturnPickingIDs: returnIDs,
	}, nil
}

// createOrder persists the new draft order in its own transaction.
func (h *FulfillOrderCommandHandler) createOrder(
	ctx context.Context,
	uow UoW,
	cmd FulfillOrderCommand,
) (*order.Order, error) {
	o, err := buildOrder(cmd.OrderID(), cmd.PartnerID(), cmd.Policy(), cmd.LineParams())
	if err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// confirmOrder confirms the order and materializes its delivery picking in
// draft status.
func (h *FulfillOrderCommandHandler) confirmOrder(ctx context.Context, uow UoW, o *order.Order) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := o.Confirm(); err != nil {
		return err
	}

	p, err := h.planner.PlanPickings(o)
	if err != nil {
		return err
	}

	if err = uow.PickingRepository().Add(ctx, p); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// deliver runs the delivery phase for every picking of the order. A stock
// shortage parks the picking in waiting instead of failing the phase; the
// invoice gate surfaces the incomplete delivery afterwards.
func (h *FulfillOrderCommandHandler) deliver(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	instructed map[kernel.UUID]float64,
) (pickingIDs, returnIDs []kernel.UUID, err error) {
	if err = uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	pickings, err := uow.PickingRepository().GetAllByOrder(ctx, o.ID())
	if err != nil {
		return nil, nil, err
	}

	products := make(map[kernel.UUID]*product.Product)
	getProduct := func(id kernel.UUID) (*product.Product, error) {
		if cached, ok := products[id]; ok {
			return cached, nil
		}
		prod, getErr := uow.ProductRepository().Get(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		products[id] = prod
		return prod, nil
	}

	for _, p := range pickings {
		pickingIDs = append(pickingIDs, p.ID())

		if p.Status() == picking.Draft {
			if err = p.Confirm(); err != nil {
				return nil, nil, err
			}
		}

		reserved, reserveErr := h.reservePicking(p, getProduct)
		if reserveErr != nil {
			return nil, nil, reserveErr
		}
		if !reserved {
			if err = p.Park(); err != nil {
				return nil, nil, err
			}
			if err = uow.PickingRepository().Update(ctx, p); err != nil {
				return nil, nil, err
			}
			h.metrics.RecordPickingParked()
			continue
		}

		returnID, deliverErr := h.deliverPicking(ctx, uow, o, p, instructed, getProduct)
		if deliverErr != nil {
			return nil, nil, deliverErr
		}
		if returnID != nil {
			returnIDs = append(returnIDs, *returnID)
		}
	}

	for _, prod := range products {
		if err = uow.ProductRepository().Update(ctx, prod); err != nil {
			return nil, nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return pickingIDs, returnIDs, nil
}

// reservePicking checks availability for the picking's total demand and
// reserves stock when everything fits. Returns false on shortage without
// holding anything.
func (h *FulfillOrderCommandHandler) reservePicking(
	p *picking.Picking,
	getProduct func(kernel.UUID) (*product.Product, error),
) (bool, error) {
	demand := make(map[kernel.UUID]float64)
	for _, move := range p.Moves() {
		demand[move.ProductID()] += move.Qty()
	}

	for productID, qty := range demand {
		prod, err := getProduct(productID)
		if err != nil {
			return false, err
		}
		if prod.QtyAvailable() < qty {
			return false, nil
		}
	}

	for _, move := range p.Moves() {
		prod, err := getProduct(move.ProductID())
		if err != nil {
			return false, err
		}
		if err = prod.Reserve(move.Qty()); err != nil {
			return false, err
		}
	}

	if err := p.MarkAssigned(); err != nil {
		return false, err
	}

	return true, nil
}

// deliverPicking records done quantities, validates the delivery, ships the
// stock and creates the return picking for flagged lines.
func (h *FulfillOrderCommandHandler) deliverPicking(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	p *picking.Picking,
	instructed map[kernel.UUID]float64,
	getProduct func(kernel.UUID) (*product.Product, error),
) (*kernel.UUID, error) {
	plans, err := h.planner.PlanMoveQuantities(p, instructed)
	if err != nil {
		return nil, err
	}

	movesByID := make(map[kernel.UUID]*picking.Move, len(p.Moves()))
	for _, move := range p.Moves() {
		movesByID[move.ID()] = move
	}

	returnQtys := make(map[kernel.UUID]float64)
	for _, plan := range plans {
		move := movesByID[plan.MoveID]
		if err = move.RecordDone(plan.QtyDone); err != nil {
			return nil, err
		}

		prod, prodErr := getProduct(move.ProductID())
		if prodErr != nil {
			return nil, prodErr
		}
		if plan.QtyDone > 0 {
			if err = prod.Ship(plan.QtyDone); err != nil {
				return nil, err
			}
		}
		if rest := move.Qty() - plan.QtyDone; rest > 0 {
			if err = prod.Release(rest); err != nil {
				return nil, err
			}
		}

		if plan.ReturnQty > 0 {
			returnQtys[plan.MoveID] = plan.ReturnQty
		}
	}

	if err = p.ValidateDelivery(); err != nil {
		return nil, err
	}
	o.RecordDelivery(p.TotalQtyDone())

	if err = uow.PickingRepository().Update(ctx, p); err != nil {
		return nil, err
	}

	if len(returnQtys) == 0 {
		return nil, nil
	}

	rp, err := picking.NewReturnPickingFromPicking(kernel.NewUUID(), p, returnQtys)
	if err != nil {
		return nil, err
	}
	if err = rp.Confirm(); err != nil {
		return nil, err
	}

	for _, rm := range rp.Moves() {
		prod, prodErr := getProduct(rm.ProductID())
		if prodErr != nil {
			return nil, prodErr
		}
		if err = prod.Restock(rm.Qty()); err != nil {
			return nil, err
		}
	}

	if err = uow.PickingRepository().AddReturn(ctx, rp); err != nil {
		return nil, err
	}
	h.metrics.RecordReturnCreated()

	returnID := rp.ID()
	return &returnID, nil
}

// invoiceOrder re-reads the order's state in a fresh transaction, applies
// the invoice gate and posts the invoice.
func (h *FulfillOrderCommandHandler) invoiceOrder(
	ctx context.Context,
	uow UoW,
	orderID kernel.UUID,
) (kernel.UUID, error) {
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return kernel.UUID{}, err
	}

	pickings, err := uow.PickingRepository().GetAllByOrder(ctx, orderID)
	if err != nil {
		return kernel.UUID{}, err
	}

	// An order that is not eligible for invoicing completes without an
	// invoice, regardless of picking states.
	if o.InvoiceStatus() != order.InvoiceToInvoice {
		if err = uow.Commit(ctx); err != nil {
			return kernel.UUID{}, err
		}
		return kernel.UUID{}, nil
	}

	// The gate looks at delivery pickings only; return pickings never block
	// invoicing.
	for _, p := range pickings {
		if p.Status() == picking.Cancelled {
			continue
		}
		if !p.IsDone() {
			return kernel.UUID{}, errs.NewInvoiceGateError(orderID.String())
		}
	}

	inv, err := invoice.NewInvoiceFromOrder(kernel.NewUUID(), o)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = inv.Post(); err != nil {
		return kernel.UUID{}, err
	}
	if err = o.MarkInvoiced(); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.InvoiceRepository().Add(ctx, inv); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return inv.ID(), nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, errs.ErrInvoiceGate):
		return "invoice_gate"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, errs.ErrStateConflict):
		return "state_conflict"
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return "validation"
	default:
		return "internal"
	}
}
