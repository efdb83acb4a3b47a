package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
)

// PickingRepository defines the persistence contract for picking aggregates
// and their return counterparts.
type PickingRepository interface {
	// Add persists a new picking aggregate to storage.
	Add(ctx context.Context, aggregate *picking.Picking) error

	// Update persists changes to an existing picking aggregate.
	Update(ctx context.Context, aggregate *picking.Picking) error

	// Get retrieves a picking aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*picking.Picking, error)

	// GetAllByOrder retrieves all pickings that fulfill the given order.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*picking.Picking, error)

	// GetAllInWaitingStatus retrieves all pickings parked on a stock
	// shortage. Used by the background reservation job.
	GetAllInWaitingStatus(ctx context.Context) ([]*picking.Picking, error)

	// AddReturn persists a new return picking.
	AddReturn(ctx context.Context, aggregate *picking.ReturnPicking) error

	// UpdateReturn persists changes to an existing return picking.
	UpdateReturn(ctx context.Context, aggregate *picking.ReturnPicking) error

	// GetReturnsByOrder retrieves all return pickings for the given order.
	GetReturnsByOrder(ctx context.Context, orderID kernel.UUID) ([]*picking.ReturnPicking, error)
}
