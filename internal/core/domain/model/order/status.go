package order

import (
	"fmt"

	"courierhub/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State machine:
//
//	placed ─> confirmed ─> preparing ─> ready_for_pickup ─> picked_up ─> out_for_delivery ─> delivered
//	   │                                                                                   ├─> cancelled
//	   └────────────── (any non-terminal status may move to any status) ──────────────────├─> failed
//	                                                                                       └─> refunded
//
// Forward ordering between non-terminal statuses is not enforced: the courier
// app drives it and is trusted to do so. What is enforced is that a terminal
// status (delivered, cancelled, failed, refunded) closes the order: no further
// transition is accepted, not even to the same status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status of every order.
	Placed
	Confirmed
	Preparing
	ReadyForPickup
	PickedUp
	OutForDelivery

	// Delivered and the statuses below are terminal.
	Delivered
	Cancelled
	Failed
	Refunded
)

var statusNames = map[Status]string{
	Placed:         "placed",
	Confirmed:      "confirmed",
	Preparing:      "preparing",
	ReadyForPickup: "ready_for_pickup",
	PickedUp:       "picked_up",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
	Failed:         "failed",
	Refunded:       "refunded",
}

var statusByName = func() map[string]Status {
	m := make(map[string]Status, len(statusNames))
	for s, name := range statusNames {
		m[name] = s
	}
	return m
}()

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		Placed, Confirmed, Preparing, ReadyForPickup, PickedUp, OutForDelivery,
		Delivered, Cancelled, Failed, Refunded,
	}
}

// TerminalStatuses returns the statuses that close an order.
func TerminalStatuses() []Status {
	return []Status{Delivered, Cancelled, Failed, Refunded}
}

// ParseStatus converts a wire name such as "ready_for_pickup" into a Status.
//
// Returns:
//   - (Status, nil) for a recognized name
//   - (Unknown, *errs.ValueIsInvalidError) otherwise
func ParseStatus(name string) (Status, error) {
	if s, ok := statusByName[name]; ok {
		return s, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a recognized status", name),
	)
}

// Validate checks if the Status value is one of the recognized statuses.
// Unknown (0) and any other out-of-table value are invalid.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid values.
//
// Example:
//
//	fmt.Println(order.ReadyForPickup) // Output: "ready_for_pickup"
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the status as its wire name.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire name.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal reports whether the status closes the order.
func (s Status) IsTerminal() bool {
	switch s { //nolint:exhaustive // only terminal statuses are listed
	case Delivered, Cancelled, Failed, Refunded:
		return true
	default:
		return false
	}
}

// ValidateTransition checks whether moving from s to next is allowed without
// performing it.
//
// Returns:
//   - nil when s is a non-terminal status and next is recognized
//   - *errs.InvalidTransitionError when s is terminal or either side is unrecognized
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(s.String(), next.String(), err)
	}

	if err := s.Validate(); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(s.String(), next.String(), err)
	}

	if s.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(
			s.String(),
			next.String(),
			fmt.Errorf("%s is a terminal status", s),
		)
	}

	return nil
}

// TransitionTo returns next if the transition is allowed.
//
// Example:
//
//	newStatus, err := order.Placed.TransitionTo(order.Preparing) // preparing, nil
//	_, err = order.Delivered.TransitionTo(order.Preparing)       // InvalidTransition
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.ValidateTransition(next); err != nil {
		return Unknown, err
	}
	return next, nil
}
