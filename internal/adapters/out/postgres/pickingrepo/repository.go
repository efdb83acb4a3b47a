package pickingrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPickingRepository implements PickingRepository using GORM. It persists
// both delivery pickings and their return counterparts.
type GormPickingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPickingRepository creates a new GORM picking repository.
func NewGormPickingRepository(db *gorm.DB, tracker aggregateTracker) *GormPickingRepository {
	return &GormPickingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new picking with its moves and move lines.
func (r *GormPickingRepository) Add(ctx context.Context, aggregate *picking.Picking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing picking. Move lines carry the mutable state
// (recorded quantities), so the full aggregate is written back.
func (r *GormPickingRepository) Update(ctx context.Context, aggregate *picking.Picking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&PickingDTO{}).
		Where("id = ?", dto.ID).
		Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for _, move := range dto.Moves {
		for _, line := range move.Lines {
			err := r.db.WithContext(ctx).
				Model(&MoveLineDTO{}).
				Where("id = ?", line.ID).
				Updates(map[string]any{
					"qty_done": line.QtyDone,
					"recorded": line.Recorded,
				}).Error
			if err != nil {
				return err
			}
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a picking with its moves and move lines by ID.
func (r *GormPickingRepository) Get(ctx context.Context, id kernel.UUID) (*picking.Picking, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PickingDTO
	err := r.db.WithContext(ctx).Preload("Moves.Lines").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("picking", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves all pickings that fulfill the given order.
func (r *GormPickingRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*picking.Picking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PickingDTO
	err := r.db.WithContext(ctx).Preload("Moves.Lines").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAllInWaitingStatus retrieves all pickings parked on a stock shortage.
func (r *GormPickingRepository) GetAllInWaitingStatus(ctx context.Context) ([]*picking.Picking, error) {
	var dtos []PickingDTO
	err := r.db.WithContext(ctx).Preload("Moves.Lines").
		Find(&dtos, "status = ?", int(picking.Waiting)).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// AddReturn saves a new return picking with its moves.
func (r *GormPickingRepository) AddReturn(ctx context.Context, aggregate *picking.ReturnPicking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := returnFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateReturn saves an existing return picking's status.
func (r *GormPickingRepository) UpdateReturn(ctx context.Context, aggregate *picking.ReturnPicking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := returnFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ReturnPickingDTO{}).
		Where("id = ?", dto.ID).
		Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetReturnsByOrder retrieves all return pickings for the given order.
func (r *GormPickingRepository) GetReturnsByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*picking.ReturnPicking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ReturnPickingDTO
	err := r.db.WithContext(ctx).Preload("Moves").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	returns := make([]*picking.ReturnPicking, 0, len(dtos))
	for _, dto := range dtos {
		rp, rpErr := returnToDomain(dto)
		if rpErr != nil {
			return nil, rpErr
		}
		returns = append(returns, rp)
	}

	return returns, nil
}

func (r *GormPickingRepository) toDomainAll(dtos []PickingDTO) ([]*picking.Picking, error) {
	pickings := make([]*picking.Picking, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		pickings = append(pickings, p)
	}

	return pickings, nil
}
