package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ReservePendingPickingsCommandHandler retries stock reservation for every
// waiting picking. A picking moves to assigned only when its full demand can
// be held; partial reservations are never taken.
type ReservePendingPickingsCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewReservePendingPickingsCommandHandler creates a handler for reservation
// retry operations.
func NewReservePendingPickingsCommandHandler(uowFactory StockUoWFactory) ReservePendingPickingsCommandHandler {
	return ReservePendingPickingsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reservation retry command. Waiting pickings are
// processed in one transaction; competing demand is resolved first come
// first served within the batch.
func (h *ReservePendingPickingsCommandHandler) Handle(ctx context.Context, cmd ReservePendingPickingsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pickings, err := uow.PickingRepository().GetAllInWaitingStatus(ctx)
	if err != nil {
		return err
	}
	if len(pickings) == 0 {
		return uow.Commit(ctx)
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
		demand := make(map[kernel.UUID]float64)
		for _, move := range p.Moves() {
			demand[move.ProductID()] += move.Qty()
		}

		reservable := true
		for productID, qty := range demand {
			prod, prodErr := getProduct(productID)
			if prodErr != nil {
				return prodErr
			}
			if prod.QtyAvailable() < qty {
				reservable = false
				break
			}
		}
		if !reservable {
			continue
		}

		for _, move := range p.Moves() {
			prod, prodErr := getProduct(move.ProductID())
			if prodErr != nil {
				return prodErr
			}
			if err = prod.Reserve(move.Qty()); err != nil {
				return err
			}
		}

		if err = p.MarkAssigned(); err != nil {
			return err
		}
		if err = uow.PickingRepository().Update(ctx, p); err != nil {
			return err
		}
	}

	for _, prod := range products {
		if err = uow.ProductRepository().Update(ctx, prod); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
