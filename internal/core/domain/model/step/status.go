package step

import (
	"fmt"

	"shiptrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a workflow step.
//
// State transitions:
//
//	Pending ──> InProgress ──> Done
//	   ^            │
//	   └────────────┘ (reset clears timestamps)
//
// Blocked can be entered from any non-final state, typically by staff
// flagging a problem, and feeds directly into the shipment-level status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every instantiated step.
	Pending

	// InProgress indicates work on the step has started.
	// Entering it for the first time stamps started_at and the SLA deadline.
	InProgress

	// Done indicates the step is complete. Entering it stamps completed_at.
	Done

	// Blocked indicates the step cannot proceed and delays the shipment.
	Blocked
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		InProgress: "InProgress",
		Done:       "Done",
		Blocked:    "Blocked",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		InProgress: "InProgress",
		Done:       "Done",
		Blocked:    "Blocked",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the string representation of the status.
// Invalid values render as "Unknown".
func (s Status) String() string {
	if name, ok := getStatusStrings()[s]; ok {
		return name
	}
	return getStatusStrings()[Unknown]
}

// StatusFromString parses a status name as supplied by calling layers.
// Returns an error for unrecognized names.
func StatusFromString(name string) (Status, error) {
	for status, s := range getValidStatusStrings() {
		if s == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status name", name))
}
