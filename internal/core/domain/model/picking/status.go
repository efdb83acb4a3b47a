package picking

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a picking.
//
// State transitions:
//
//	Draft ──> Confirmed ──┬──> Assigned ──> Done
//	                      │        ▲
//	                      └──> Waiting (stock shortage)
//	any non-final ──> Cancelled
//
// The Waiting state is entered when stock cannot be reserved; a later
// reservation attempt moves the picking on to Assigned.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Draft is the initial status of a freshly materialized picking.
	Draft

	// Confirmed indicates the picking is confirmed and awaiting stock.
	Confirmed

	// Waiting indicates a reservation attempt found insufficient stock.
	Waiting

	// Assigned indicates stock has been reserved for every move.
	Assigned

	// Done indicates the delivery has been validated. Final state.
	Done

	// Cancelled indicates the picking was cancelled. Final state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Draft:     "draft",
		Confirmed: "confirmed",
		Waiting:   "waiting",
		Assigned:  "assigned",
		Done:      "done",
		Cancelled: "cancel",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:     "draft",
		Confirmed: "confirmed",
		Waiting:   "waiting",
		Assigned:  "assigned",
		Done:      "done",
		Cancelled: "cancel",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid picking status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Draft -> Confirmed
func (s Status) Confirm() (Status, error) {
	if s != Draft {
		return 0, errs.NewStateConflictError("picking", "", s.String(), "confirm")
	}

	return Confirmed, nil
}

// Assign transitions the status to Assigned after a successful reservation.
//
// Valid transitions:
//   - Confirmed -> Assigned
//   - Waiting -> Assigned
func (s Status) Assign() (Status, error) {
	if s != Confirmed && s != Waiting {
		return 0, errs.NewStateConflictError("picking", "", s.String(), "assign")
	}

	return Assigned, nil
}

// Park transitions the status to Waiting after a failed reservation.
// Parking an already waiting picking is a no-op.
//
// Valid transitions:
//   - Confirmed -> Waiting
//   - Waiting -> Waiting
func (s Status) Park() (Status, error) {
	if s != Confirmed && s != Waiting {
		return 0, errs.NewStateConflictError("picking", "", s.String(), "park")
	}

	return Waiting, nil
}

// Finish transitions the status to Done once the delivery is validated.
//
// Valid transitions:
//   - Assigned -> Done
func (s Status) Finish() (Status, error) {
	if s != Assigned {
		return 0, errs.NewStateConflictError("picking", "", s.String(), "validate")
	}

	return Done, nil
}

// Cancel transitions the status to Cancelled.
// Done is final and cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	if s == Done || s == Cancelled || s == Unknown {
		return 0, errs.NewStateConflictError("picking", "", s.String(), "cancel")
	}

	return Cancelled, nil
}
