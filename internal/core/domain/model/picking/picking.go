package picking

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrPickingIsNotConstructed is returned when a Picking instance was not
	// created through the NewPicking factory method.
	ErrPickingIsNotConstructed = errors.New("Picking must be created via NewPicking constructor")

	// ErrPickingHasNoMoves is returned when a picking is created without moves.
	ErrPickingHasNoMoves = errors.New("picking must have at least one move")

	// ErrQtyNotRecorded is returned when the picking is validated while a
	// move still has no recorded quantity.
	ErrQtyNotRecorded = errors.New("every move must have a recorded quantity before validation")
)

// Picking is the aggregate root for a delivery. It owns its moves and drives
// the delivery lifecycle through explicit transition methods.
type Picking struct {
	id      kernel.UUID
	orderID kernel.UUID
	status  Status
	moves   []*Move

	guard guard.ConstructorGuard
}

// NewPicking creates a new Picking in Draft status.
func NewPicking(id kernel.UUID, orderID kernel.UUID, moves []*Move) (*Picking, error) {
	p := &Picking{
		status: Draft,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setMoves(moves),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePicking reconstructs a Picking from persistence.
func RestorePicking(id kernel.UUID, orderID kernel.UUID, status Status, moves []*Move) (*Picking, error) {
	p := &Picking{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setMoves(moves),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	p.status = status
	return p, nil
}

// Validate ensures the Picking instance was properly constructed through
// NewPicking or RestorePicking.
func (p *Picking) Validate() error {
	if p == nil {
		return ErrPickingIsNotConstructed
	}
	return p.guard.Validate(ErrPickingIsNotConstructed)
}

// IsEqual compares two pickings by their unique identifiers.
func (p *Picking) IsEqual(other *Picking) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the picking's unique identifier.
func (p *Picking) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the order the picking fulfills.
func (p *Picking) OrderID() kernel.UUID {
	return p.orderID
}

// Status returns the current lifecycle status.
func (p *Picking) Status() Status {
	return p.status
}

// Moves returns the picking's moves. The slice must not be mutated by callers.
func (p *Picking) Moves() []*Move {
	return p.moves
}

// IsDone reports whether the delivery has been validated.
func (p *Picking) IsDone() bool {
	return p.status == Done
}

// TotalQtyDone returns the total recorded quantity across all moves.
func (p *Picking) TotalQtyDone() float64 {
	var total float64
	for _, move := range p.moves {
		total += move.QtyDone()
	}
	return total
}

// Confirm transitions the picking from Draft to Confirmed.
func (p *Picking) Confirm() error {
	newStatus, err := p.status.Confirm()
	if err != nil {
		return errs.NewStateConflictError("picking", p.id.String(), p.status.String(), "confirm")
	}

	p.status = newStatus
	return nil
}

// MarkAssigned transitions the picking to Assigned after stock has been
// reserved for every move.
func (p *Picking) MarkAssigned() error {
	newStatus, err := p.status.Assign()
	if err != nil {
		return errs.NewStateConflictError("picking", p.id.String(), p.status.String(), "assign")
	}

	p.status = newStatus
	return nil
}

// Park transitions the picking to Waiting after a failed stock reservation.
// A waiting picking stays waiting.
func (p *Picking) Park() error {
	newStatus, err := p.status.Park()
	if err != nil {
		return errs.NewStateConflictError("picking", p.id.String(), p.status.String(), "park")
	}

	p.status = newStatus
	return nil
}

// ValidateDelivery transitions the picking from Assigned to Done. Every move
// must carry an explicitly recorded quantity first.
func (p *Picking) ValidateDelivery() error {
	for _, move := range p.moves {
		if !move.HasRecordedQty() {
			return ErrQtyNotRecorded
		}
	}

	newStatus, err := p.status.Finish()
	if err != nil {
		return errs.NewStateConflictError("picking", p.id.String(), p.status.String(), "validate")
	}

	p.status = newStatus
	return nil
}

// Cancel transitions the picking to Cancelled.
func (p *Picking) Cancel() error {
	newStatus, err := p.status.Cancel()
	if err != nil {
		return errs.NewStateConflictError("picking", p.id.String(), p.status.String(), "cancel")
	}

	p.status = newStatus
	return nil
}

func (p *Picking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Picking) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order ID", err)
	}
	p.orderID = orderID
	return nil
}

func (p *Picking) setMoves(moves []*Move) error {
	if len(moves) == 0 {
		return ErrPickingHasNoMoves
	}

	for _, move := range moves {
		if err := move.Validate(); err != nil {
			return err
		}
	}

	p.moves = moves
	return nil
}
