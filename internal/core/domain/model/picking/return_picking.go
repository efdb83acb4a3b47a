package picking

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrReturnPickingIsNotConstructed is returned when a ReturnPicking
	// instance was not created through its factory methods.
	ErrReturnPickingIsNotConstructed = errors.New(
		"ReturnPicking must be created via NewReturnPickingFromPicking constructor")

	// ErrReturnMoveIsNotConstructed is returned when a ReturnMove instance
	// was not created through the NewReturnMove factory method.
	ErrReturnMoveIsNotConstructed = errors.New("ReturnMove must be created via NewReturnMove constructor")

	// ErrOriginNotDone is returned when a return is created from a picking
	// whose delivery has not been validated.
	ErrOriginNotDone = errors.New("return can only be created from a completed picking")
)

// ReturnStatus represents the lifecycle state of a return picking.
type ReturnStatus int

const (
	// ReturnStatusUnknown represents an invalid or undefined status.
	ReturnStatusUnknown ReturnStatus = iota

	// ReturnCreated is the initial status of a freshly created return.
	ReturnCreated

	// ReturnConfirmed indicates the return has been confirmed. Final state.
	ReturnConfirmed
)

func getReturnStatusStrings() map[ReturnStatus]string {
	return map[ReturnStatus]string{
		ReturnStatusUnknown: "unknown",
		ReturnCreated:       "created",
		ReturnConfirmed:     "confirmed",
	}
}

// Validate checks if the ReturnStatus value is valid.
func (s ReturnStatus) Validate() error {
	if s != ReturnCreated && s != ReturnConfirmed {
		return errs.NewValueIsInvalidErrorWithCause("return status is invalid",
			fmt.Errorf("%d is not a valid return picking status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
func (s ReturnStatus) String() string {
	if str, ok := getReturnStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ReturnMove mirrors an origin move with the quantity coming back.
type ReturnMove struct {
	id           kernel.UUID
	originMoveID kernel.UUID
	productID    kernel.UUID
	qty          float64

	guard guard.ConstructorGuard
}

// NewReturnMove creates a ReturnMove for an origin move.
func NewReturnMove(id kernel.UUID, originMoveID kernel.UUID, productID kernel.UUID, qty float64) (*ReturnMove, error) {
	rm := &ReturnMove{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rm.setID(id),
		rm.setOriginMoveID(originMoveID),
		rm.setProductID(productID),
		rm.setQty(qty),
	); err != nil {
		return nil, err
	}

	return rm, nil
}

// Validate ensures the ReturnMove instance was properly constructed.
func (rm *ReturnMove) Validate() error {
	if rm == nil {
		return ErrReturnMoveIsNotConstructed
	}
	return rm.guard.Validate(ErrReturnMoveIsNotConstructed)
}

// ID returns the return move's unique identifier.
func (rm *ReturnMove) ID() kernel.UUID {
	return rm.id
}

// OriginMoveID returns the identifier of the delivered move being reversed.
func (rm *ReturnMove) OriginMoveID() kernel.UUID {
	return rm.originMoveID
}

// ProductID returns the returned product's identifier.
func (rm *ReturnMove) ProductID() kernel.UUID {
	return rm.productID
}

// Qty returns the quantity coming back.
func (rm *ReturnMove) Qty() float64 {
	return rm.qty
}

// SetQty overrides the prefilled return quantity.
func (rm *ReturnMove) SetQty(qty float64) error {
	return rm.setQty(qty)
}

func (rm *ReturnMove) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	rm.id = id
	return nil
}

func (rm *ReturnMove) setOriginMoveID(originMoveID kernel.UUID) error {
	if err := originMoveID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("origin move ID", err)
	}
	rm.originMoveID = originMoveID
	return nil
}

func (rm *ReturnMove) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product ID", err)
	}
	rm.productID = productID
	return nil
}

func (rm *ReturnMove) setQty(qty float64) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("return qty",
			fmt.Errorf("%.2f must be positive", qty))
	}
	rm.qty = qty
	return nil
}

// ReturnPicking reverses part of a completed delivery. It references the
// origin picking but lives as its own aggregate.
type ReturnPicking struct {
	id       kernel.UUID
	orderID  kernel.UUID
	originID kernel.UUID
	status   ReturnStatus
	moves    []*ReturnMove

	guard guard.ConstructorGuard
}

// NewReturnPickingFromPicking creates a return for a completed picking. The
// qtys map selects which origin moves are reversed, keyed by origin move ID.
// A nil map returns every delivered move in full; an explicit quantity must
// not exceed the move's delivered quantity.
func NewReturnPickingFromPicking(id kernel.UUID, origin *Picking, qtys map[kernel.UUID]float64) (*ReturnPicking, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if !origin.IsDone() {
		return nil, ErrOriginNotDone
	}

	rp := &ReturnPicking{
		status: ReturnCreated,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rp.setID(id),
		rp.setOrderID(origin.OrderID()),
		rp.setOriginID(origin.ID()),
	); err != nil {
		return nil, err
	}

	for _, move := range origin.Moves() {
		qty := move.QtyDone()
		if qtys != nil {
			requested, ok := qtys[move.ID()]
			if !ok {
				continue
			}
			qty = requested
		}

		if qty <= 0 {
			continue
		}
		if qty > move.QtyDone() {
			return nil, errs.NewValueIsOutOfRangeError("return qty", qty, 0, move.QtyDone())
		}

		rm, err := NewReturnMove(kernel.NewUUID(), move.ID(), move.ProductID(), qty)
		if err != nil {
			return nil, err
		}
		rp.moves = append(rp.moves, rm)
	}

	if len(rp.moves) == 0 {
		return nil, ErrPickingHasNoMoves
	}

	return rp, nil
}

// RestoreReturnPicking reconstructs a ReturnPicking from persistence.
func RestoreReturnPicking(
	id kernel.UUID,
	orderID kernel.UUID,
	originID kernel.UUID,
	status ReturnStatus,
	moves []*ReturnMove,
) (*ReturnPicking, error) {
	rp := &ReturnPicking{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rp.setID(id),
		rp.setOrderID(orderID),
		rp.setOriginID(originID),
		rp.setMoves(moves),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	rp.status = status
	return rp, nil
}

// Validate ensures the ReturnPicking instance was properly constructed.
func (rp *ReturnPicking) Validate() error {
	if rp == nil {
		return ErrReturnPickingIsNotConstructed
	}
	return rp.guard.Validate(ErrReturnPickingIsNotConstructed)
}

// ID returns the return picking's unique identifier.
func (rp *ReturnPicking) ID() kernel.UUID {
	return rp.id
}

// OrderID returns the identifier of the order the return belongs to.
func (rp *ReturnPicking) OrderID() kernel.UUID {
	return rp.orderID
}

// OriginID returns the identifier of the picking being reversed.
func (rp *ReturnPicking) OriginID() kernel.UUID {
	return rp.originID
}

// Status returns the current lifecycle status.
func (rp *ReturnPicking) Status() ReturnStatus {
	return rp.status
}

// Moves returns the return's moves. The slice must not be mutated by callers.
func (rp *ReturnPicking) Moves() []*ReturnMove {
	return rp.moves
}

// Confirm transitions the return from ReturnCreated to ReturnConfirmed.
func (rp *ReturnPicking) Confirm() error {
	if rp.status != ReturnCreated {
		return errs.NewStateConflictError("return picking", rp.id.String(), rp.status.String(), "confirm")
	}

	rp.status = ReturnConfirmed
	return nil
}

func (rp *ReturnPicking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	rp.id = id
	return nil
}

func (rp *ReturnPicking) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order ID", err)
	}
	rp.orderID = orderID
	return nil
}

func (rp *ReturnPicking) setOriginID(originID kernel.UUID) error {
	if err := originID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("origin picking ID", err)
	}
	rp.originID = originID
	return nil
}

func (rp *ReturnPicking) setMoves(moves []*ReturnMove) error {
	if len(moves) == 0 {
		return ErrPickingHasNoMoves
	}

	for _, move := range moves {
		if err := move.Validate(); err != nil {
			return err
		}
	}

	rp.moves = moves
	return nil
}
