package services

import (
	"errors"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/picking"
)

// ErrOrderNotConfirmed is returned when pickings are planned for an order
// that has not been confirmed.
var ErrOrderNotConfirmed = errors.New("pickings can only be planned for a confirmed order")

// DeliveryPlanner is a domain service that derives delivery pickings from a
// confirmed order and translates per-line delivery instructions into move
// quantities and return requests.
//
// Business rules:
//   - Only confirmed orders produce pickings
//   - Moves carry absolute quantities; the sign of an order line never
//     reaches the inventory layer
//   - A negative instructed quantity means "deliver in full, then return
//     that many units"
//
// Example usage:
//
//	planner := services.NewDeliveryPlanner()
//	p, err := planner.PlanPickings(o)
//	if err != nil {
//	    // order was not confirmed or line data is inconsistent
//	}
type DeliveryPlanner struct{}

// NewDeliveryPlanner creates a new DeliveryPlanner instance.
func NewDeliveryPlanner() DeliveryPlanner {
	return DeliveryPlanner{}
}

// MovePlan is the planned outcome for a single move: the quantity to record
// as done and the quantity flagged for return.
type MovePlan struct {
	MoveID    kernel.UUID
	QtyDone   float64
	ReturnQty float64
}

// PlanPickings materializes the delivery picking for a confirmed order. One
// picking is produced with one move per order line, each requesting the
// line's absolute quantity.
func (dp DeliveryPlanner) PlanPickings(o *order.Order) (*picking.Picking, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Sale {
		return nil, ErrOrderNotConfirmed
	}

	moves := make([]*picking.Move, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		move, err := picking.NewMove(kernel.NewUUID(), line.ProductID(), math.Abs(line.Qty()))
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return picking.NewPicking(kernel.NewUUID(), o.ID(), moves)
}

// PlanMoveQuantities resolves per-move done quantities for a picking from
// the instructed quantities keyed by product.
//
// A missing instruction means full delivery of the requested quantity. A
// non-negative instruction is recorded as given. A negative instruction
// records a full delivery and flags its absolute value for return, so the
// returned units exist in the done quantities they reverse.
func (dp DeliveryPlanner) PlanMoveQuantities(
	p *picking.Picking,
	instructed map[kernel.UUID]float64,
) ([]MovePlan, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	plans := make([]MovePlan, 0, len(p.Moves()))
	for _, move := range p.Moves() {
		plan := MovePlan{MoveID: move.ID(), QtyDone: move.Qty()}

		if qty, ok := instructed[move.ProductID()]; ok {
			if qty < 0 {
				plan.ReturnQty = math.Abs(qty)
			} else {
				plan.QtyDone = qty
			}
		}

		plans = append(plans, plan)
	}

	return plans, nil
}

// HasReturns reports whether any plan flags a quantity for return.
func (dp DeliveryPlanner) HasReturns(plans []MovePlan) bool {
	for _, plan := range plans {
		if plan.ReturnQty > 0 {
			return true
		}
	}
	return false
}
