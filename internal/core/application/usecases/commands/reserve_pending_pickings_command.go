package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrReservePendingPickingsCommandIsNotConstructed = errors.New(
	"ReservePendingPickingsCommand must be created via NewReservePendingPickingsCommand constructor",
)

// ReservePendingPickingsCommand triggers a reservation re-attempt for every
// picking parked in waiting. Pickings whose stock has arrived move on to
// assigned; the rest stay waiting.
//
// Example:
//
//	cmd := NewReservePendingPickingsCommand()
//	handler := NewReservePendingPickingsCommandHandler(uowFactory)
//
//	// Run periodically to pick up restocked products
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Reservation retry failed: %v", err)
//	}
type ReservePendingPickingsCommand struct {
	guard guard.ConstructorGuard
}

// NewReservePendingPickingsCommand creates a command to retry pending
// reservations. This is a parameterless command that processes all waiting
// pickings.
func NewReservePendingPickingsCommand() ReservePendingPickingsCommand {
	return ReservePendingPickingsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ReservePendingPickingsCommand) Validate() error {
	return c.guard.Validate(ErrReservePendingPickingsCommandIsNotConstructed)
}
