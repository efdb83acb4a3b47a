package picking

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrMoveIsNotConstructed is returned when a Move instance was not
	// created through the NewMove factory method.
	ErrMoveIsNotConstructed = errors.New("Move must be created via NewMove constructor")

	// ErrMoveLineIsNotConstructed is returned when a MoveLine instance was
	// not created through the NewMoveLine factory method.
	ErrMoveLineIsNotConstructed = errors.New("MoveLine must be created via NewMoveLine constructor")
)

// MoveLine carries the quantity actually handled for a move. The recorded
// flag distinguishes an explicit zero from an untouched line.
type MoveLine struct {
	id       kernel.UUID
	qtyDone  float64
	recorded bool

	guard guard.ConstructorGuard
}

// NewMoveLine creates an empty move line with no recorded quantity.
func NewMoveLine(id kernel.UUID) (*MoveLine, error) {
	ml := &MoveLine{
		guard: guard.NewConstructorGuard(),
	}

	if err := ml.setID(id); err != nil {
		return nil, err
	}
	return ml, nil
}

// RestoreMoveLine reconstructs a MoveLine from persistence.
func RestoreMoveLine(id kernel.UUID, qtyDone float64, recorded bool) (*MoveLine, error) {
	ml := &MoveLine{
		guard: guard.NewConstructorGuard(),
	}

	if err := ml.setID(id); err != nil {
		return nil, err
	}

	ml.qtyDone = qtyDone
	ml.recorded = recorded
	return ml, nil
}

// Validate ensures the MoveLine instance was properly constructed.
func (ml *MoveLine) Validate() error {
	if ml == nil {
		return ErrMoveLineIsNotConstructed
	}
	return ml.guard.Validate(ErrMoveLineIsNotConstructed)
}

// ID returns the move line's unique identifier.
func (ml *MoveLine) ID() kernel.UUID {
	return ml.id
}

// QtyDone returns the recorded quantity, zero when nothing was recorded yet.
func (ml *MoveLine) QtyDone() float64 {
	return ml.qtyDone
}

// Recorded reports whether a quantity was explicitly recorded.
func (ml *MoveLine) Recorded() bool {
	return ml.recorded
}

// RecordQtyDone records the handled quantity. Negative values are rejected;
// the signed return convention is resolved before reaching the move line.
func (ml *MoveLine) RecordQtyDone(qty float64) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty done",
			fmt.Errorf("%.2f is negative", qty))
	}

	ml.qtyDone = qty
	ml.recorded = true
	return nil
}

func (ml *MoveLine) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	ml.id = id
	return nil
}

// Move is a requested product quantity inside a picking. A move owns its
// move lines; quantity recording flows through them.
type Move struct {
	id        kernel.UUID
	productID kernel.UUID
	qty       float64
	lines     []*MoveLine

	guard guard.ConstructorGuard
}

// NewMove creates a Move with a single empty MoveLine. The requested
// quantity must be positive; pickings always move absolute quantities.
func NewMove(id kernel.UUID, productID kernel.UUID, qty float64) (*Move, error) {
	m := &Move{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setProductID(productID),
		m.setQty(qty),
	); err != nil {
		return nil, err
	}

	line, err := NewMoveLine(kernel.NewUUID())
	if err != nil {
		return nil, err
	}
	m.lines = []*MoveLine{line}

	return m, nil
}

// RestoreMove reconstructs a Move from persistence together with its lines.
func RestoreMove(id kernel.UUID, productID kernel.UUID, qty float64, lines []*MoveLine) (*Move, error) {
	m := &Move{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setID(id),
		m.setProductID(productID),
		m.setQty(qty),
		m.setLines(lines),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate ensures the Move instance was properly constructed.
func (m *Move) Validate() error {
	if m == nil {
		return ErrMoveIsNotConstructed
	}
	return m.guard.Validate(ErrMoveIsNotConstructed)
}

// ID returns the move's unique identifier.
func (m *Move) ID() kernel.UUID {
	return m.id
}

// ProductID returns the moved product's identifier.
func (m *Move) ProductID() kernel.UUID {
	return m.productID
}

// Qty returns the requested quantity.
func (m *Move) Qty() float64 {
	return m.qty
}

// Lines returns the move's lines. The slice must not be mutated by callers.
func (m *Move) Lines() []*MoveLine {
	return m.lines
}

// QtyDone returns the total recorded quantity across all move lines.
func (m *Move) QtyDone() float64 {
	var total float64
	for _, line := range m.lines {
		total += line.QtyDone()
	}
	return total
}

// HasRecordedQty reports whether every move line carries an explicitly
// recorded quantity. Validation of the picking requires this.
func (m *Move) HasRecordedQty() bool {
	for _, line := range m.lines {
		if !line.Recorded() {
			return false
		}
	}
	return true
}

// RecordDone records the handled quantity on the move's first line.
func (m *Move) RecordDone(qty float64) error {
	if len(m.lines) == 0 {
		return errs.NewValueIsInvalidError("move has no lines")
	}
	return m.lines[0].RecordQtyDone(qty)
}

func (m *Move) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Move) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product ID", err)
	}
	m.productID = productID
	return nil
}

func (m *Move) setQty(qty float64) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%.2f must be positive", qty))
	}
	m.qty = qty
	return nil
}

func (m *Move) setLines(lines []*MoveLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsInvalidError("move has no lines")
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	m.lines = lines
	return nil
}
