package product

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct factory method.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInsufficientStock is returned when a reservation asks for more than
	// the available quantity.
	ErrInsufficientStock = errors.New("insufficient stock to reserve")
)

// Product represents a stocked product. Available quantity is on-hand minus
// reserved; both counters only move through explicit operations.
type Product struct {
	id          kernel.UUID
	name        string
	qtyOnHand   float64
	qtyReserved float64

	guard guard.ConstructorGuard
}

// NewProduct creates a Product with an initial on-hand quantity and nothing
// reserved.
func NewProduct(id kernel.UUID, name string, qtyOnHand float64) (*Product, error) {
	p := &Product{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setQtyOnHand(qtyOnHand),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persistence.
func RestoreProduct(id kernel.UUID, name string, qtyOnHand, qtyReserved float64) (*Product, error) {
	p, err := NewProduct(id, name, qtyOnHand)
	if err != nil {
		return nil, err
	}

	if qtyReserved < 0 || qtyReserved > qtyOnHand {
		return nil, errs.NewValueIsOutOfRangeError("qty reserved", qtyReserved, 0, qtyOnHand)
	}

	p.qtyReserved = qtyReserved
	return p, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// QtyOnHand returns the physical quantity in stock.
func (p *Product) QtyOnHand() float64 {
	return p.qtyOnHand
}

// QtyReserved returns the quantity held for assigned pickings.
func (p *Product) QtyReserved() float64 {
	return p.qtyReserved
}

// QtyAvailable returns the quantity free for new reservations.
func (p *Product) QtyAvailable() float64 {
	return p.qtyOnHand - p.qtyReserved
}

// CanReserve reports whether qty units are free for reservation.
func (p *Product) CanReserve(qty float64) bool {
	return qty > 0 && qty <= p.QtyAvailable()
}

// Reserve holds qty units for a picking. Fails with ErrInsufficientStock
// when the available quantity is too low.
func (p *Product) Reserve(qty float64) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%.2f must be positive", qty))
	}
	if qty > p.QtyAvailable() {
		return ErrInsufficientStock
	}

	p.qtyReserved += qty
	return nil
}

// Release frees a previously held reservation, for example when a picking
// is cancelled.
func (p *Product) Release(qty float64) error {
	if qty <= 0 || qty > p.qtyReserved {
		return errs.NewValueIsOutOfRangeError("qty", qty, 0, p.qtyReserved)
	}

	p.qtyReserved -= qty
	return nil
}

// Ship consumes reserved stock when a delivery is validated. The shipped
// quantity must be covered by an existing reservation.
func (p *Product) Ship(qty float64) error {
	if qty <= 0 || qty > p.qtyReserved {
		return errs.NewValueIsOutOfRangeError("qty", qty, 0, p.qtyReserved)
	}

	p.qtyOnHand -= qty
	p.qtyReserved -= qty
	return nil
}

// Restock puts returned units back on hand.
func (p *Product) Restock(qty float64) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%.2f must be positive", qty))
	}

	p.qtyOnHand += qty
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setQtyOnHand(qty float64) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty on hand",
			fmt.Errorf("%.2f is negative", qty))
	}
	p.qtyOnHand = qty
	return nil
}
