// Package pickingrepo provides data transfer objects and mapping functions
// for picking and return picking persistence.
package pickingrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/picking"

	"github.com/google/uuid"
)

// PickingDTO represents the database structure for persisting picking
// aggregates. Moves and their lines are has-many associations.
type PickingDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Status  int       `gorm:"index"`
	Moves   []MoveDTO `gorm:"foreignKey:PickingID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for picking entities.
func (PickingDTO) TableName() string {
	return "pickings"
}

// MoveDTO represents one stock move row.
type MoveDTO struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	PickingID uuid.UUID     `gorm:"type:uuid;index"`
	ProductID uuid.UUID     `gorm:"type:uuid"`
	Qty       float64
	Lines     []MoveLineDTO `gorm:"foreignKey:MoveID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for move entities.
func (MoveDTO) TableName() string {
	return "moves"
}

// MoveLineDTO represents one move line row. Recorded distinguishes an
// explicit zero from an untouched line.
type MoveLineDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	MoveID   uuid.UUID `gorm:"type:uuid;index"`
	QtyDone  float64
	Recorded bool
}

// TableName specifies the database table name for move line entities.
func (MoveLineDTO) TableName() string {
	return "move_lines"
}

// ReturnPickingDTO represents the database structure for persisting return
// picking aggregates.
type ReturnPickingDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID       `gorm:"type:uuid;index"`
	OriginID uuid.UUID       `gorm:"type:uuid;index"`
	Status   int
	Moves    []ReturnMoveDTO `gorm:"foreignKey:ReturnPickingID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for return picking entities.
func (ReturnPickingDTO) TableName() string {
	return "return_pickings"
}

// ReturnMoveDTO represents one return move row.
type ReturnMoveDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReturnPickingID uuid.UUID `gorm:"type:uuid;index"`
	OriginMoveID    uuid.UUID `gorm:"type:uuid"`
	ProductID       uuid.UUID `gorm:"type:uuid"`
	Qty             float64
}

// TableName specifies the database table name for return move entities.
func (ReturnMoveDTO) TableName() string {
	return "return_moves"
}

func fromDomain(aggregate *picking.Picking) PickingDTO {
	moves := make([]MoveDTO, 0, len(aggregate.Moves()))
	for _, move := range aggregate.Moves() {
		lines := make([]MoveLineDTO, 0, len(move.Lines()))
		for _, line := range move.Lines() {
			lines = append(lines, MoveLineDTO{
				ID:       line.ID().Bytes(),
				MoveID:   move.ID().Bytes(),
				QtyDone:  line.QtyDone(),
				Recorded: line.Recorded(),
			})
		}

		moves = append(moves, MoveDTO{
			ID:        move.ID().Bytes(),
			PickingID: aggregate.ID().Bytes(),
			ProductID: move.ProductID().Bytes(),
			Qty:       move.Qty(),
			Lines:     lines,
		})
	}

	return PickingDTO{
		ID:      aggregate.ID().Bytes(),
		OrderID: aggregate.OrderID().Bytes(),
		Status:  int(aggregate.Status()),
		Moves:   moves,
	}
}

func toDomain(dto PickingDTO) (*picking.Picking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	moves := make([]*picking.Move, 0, len(dto.Moves))
	for _, moveDTO := range dto.Moves {
		move, moveErr := moveToDomain(moveDTO)
		if moveErr != nil {
			return nil, moveErr
		}
		moves = append(moves, move)
	}

	return picking.RestorePicking(id, orderID, picking.Status(dto.Status), moves)
}

func moveToDomain(dto MoveDTO) (*picking.Move, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*picking.MoveLine, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		lineID, lineErr := kernel.UUIDFromBytes(lineDTO.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := picking.RestoreMoveLine(lineID, lineDTO.QtyDone, lineDTO.Recorded)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return picking.RestoreMove(id, productID, dto.Qty, lines)
}

func returnFromDomain(aggregate *picking.ReturnPicking) ReturnPickingDTO {
	moves := make([]ReturnMoveDTO, 0, len(aggregate.Moves()))
	for _, move := range aggregate.Moves() {
		moves = append(moves, ReturnMoveDTO{
			ID:              move.ID().Bytes(),
			ReturnPickingID: aggregate.ID().Bytes(),
			OriginMoveID:    move.OriginMoveID().Bytes(),
			ProductID:       move.ProductID().Bytes(),
			Qty:             move.Qty(),
		})
	}

	return ReturnPickingDTO{
		ID:       aggregate.ID().Bytes(),
		OrderID:  aggregate.OrderID().Bytes(),
		OriginID: aggregate.OriginID().Bytes(),
		Status:   int(aggregate.Status()),
		Moves:    moves,
	}
}

func returnToDomain(dto ReturnPickingDTO) (*picking.ReturnPicking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	originID, err := kernel.UUIDFromBytes(dto.OriginID[:])
	if err != nil {
		return nil, err
	}

	moves := make([]*picking.ReturnMove, 0, len(dto.Moves))
	for _, moveDTO := range dto.Moves {
		moveID, moveErr := kernel.UUIDFromBytes(moveDTO.ID[:])
		if moveErr != nil {
			return nil, moveErr
		}
		originMoveID, moveErr := kernel.UUIDFromBytes(moveDTO.OriginMoveID[:])
		if moveErr != nil {
			return nil, moveErr
		}
		productID, moveErr := kernel.UUIDFromBytes(moveDTO.ProductID[:])
		if moveErr != nil {
			return nil, moveErr
		}

		move, moveErr := picking.NewReturnMove(moveID, originMoveID, productID, moveDTO.Qty)
		if moveErr != nil {
			return nil, moveErr
		}
		moves = append(moves, move)
	}

	return picking.RestoreReturnPicking(id, orderID, originID, picking.ReturnStatus(dto.Status), moves)
}
