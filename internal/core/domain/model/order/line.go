package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through the NewLine factory method.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is an order line owned by exactly one Order. It references a product,
// an ordered quantity and a unit price.
//
// Invariants:
//   - quantity is nonzero (signed: positive for normal sales, negative
//     carries return intent through the fulfillment flow)
//   - unit price is non-negative
type Line struct {
	id        kernel.UUID
	productID kernel.UUID
	qty       float64
	unitPrice float64

	guard guard.ConstructorGuard
}

// NewLine creates a new order line with validation.
func NewLine(id kernel.UUID, productID kernel.UUID, qty float64, unitPrice float64) (*Line, error) {
	line := &Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(id),
		line.setProductID(productID),
		line.setQty(qty),
		line.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// RestoreLine reconstructs a Line from persistence.
// The same invariants apply as for NewLine.
func RestoreLine(id kernel.UUID, productID kernel.UUID, qty float64, unitPrice float64) (*Line, error) {
	return NewLine(id, productID, qty, unitPrice)
}

// Validate ensures the Line instance was properly constructed through NewLine.
func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// ProductID returns the referenced product.
func (l *Line) ProductID() kernel.UUID {
	return l.productID
}

// Qty returns the ordered quantity. The value is signed.
func (l *Line) Qty() float64 {
	return l.qty
}

// UnitPrice returns the unit price.
func (l *Line) UnitPrice() float64 {
	return l.unitPrice
}

// Amount returns the line subtotal (quantity times unit price).
func (l *Line) Amount() float64 {
	return l.qty * l.unitPrice
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product ID", err)
	}
	l.productID = productID
	return nil
}

func (l *Line) setQty(qty float64) error {
	if qty == 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			errors.New("quantity must be nonzero"))
	}
	l.qty = qty
	return nil
}

func (l *Line) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%f is not greater than or equal to 0", unitPrice))
	}
	l.unitPrice = unitPrice
	return nil
}
