package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a sales order.
// It implements a state machine with defined transitions so orders follow
// the correct business workflow.
//
// State transitions:
//
//	Draft ──> Sent ──┐
//	  │              ├──> Sale ──> Done
//	  └──────────────┘      │
//	Draft/Sent/Sale ──> Cancelled
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status of a freshly created order (a quotation).
	Draft

	// Sent indicates the quotation was sent to the partner.
	Sent

	// Sale indicates the order has been confirmed. Confirmation is the
	// trigger that materializes delivery pickings.
	Sale

	// Done indicates the order has been locked after full processing.
	Done

	// Cancelled indicates the order was cancelled. Final state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string
// representations. The strings match the wire format of the API
// ("draft", "sent", "sale", "done", "cancel").
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Draft:     "draft",
		Sent:      "sent",
		Sale:      "sale",
		Done:      "done",
		Cancelled: "cancel",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:     "draft",
		Sent:      "sent",
		Sale:      "sale",
		Done:      "done",
		Cancelled: "cancel",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Confirm transitions the status to Sale.
//
// Valid transitions:
//   - Draft -> Sale
//   - Sent -> Sale
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Confirm() (Status, error) {
	if s != Draft && s != Sent {
		return 0, errs.NewStateConflictError("order", "", s.String(), "confirm")
	}

	return Sale, nil
}

// Send transitions the status to Sent (quotation sent to the partner).
//
// Valid transitions:
//   - Draft -> Sent
func (s Status) Send() (Status, error) {
	if s != Draft {
		return 0, errs.NewStateConflictError("order", "", s.String(), "send")
	}

	return Sent, nil
}

// Lock transitions the status to Done.
//
// Valid transitions:
//   - Sale -> Done
func (s Status) Lock() (Status, error) {
	if s != Sale {
		return 0, errs.NewStateConflictError("order", "", s.String(), "lock")
	}

	return Done, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Draft -> Cancelled
//   - Sent -> Cancelled
//   - Sale -> Cancelled
//
// Done orders are locked and cannot be cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Draft && s != Sent && s != Sale {
		return 0, errs.NewStateConflictError("order", "", s.String(), "cancel")
	}

	return Cancelled, nil
}
