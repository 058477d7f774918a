package shipment

import (
	"fmt"

	"shiptrack/internal/pkg/errs"
)

// OverallStatus is the shipment-level status derived from step statuses.
// It is computed, never entered directly, with one exception: Cancelled is
// a manual terminal state that the derivation machinery leaves untouched.
type OverallStatus int

const (
	// OverallUnknown represents an invalid or undefined status.
	OverallUnknown OverallStatus = iota

	// Created: the shipment exists but no step has started.
	Created

	// InProgress: at least one step has started or finished.
	InProgress

	// Delayed: at least one step is blocked.
	Delayed

	// Completed: every step is done.
	Completed

	// Cancelled is set manually by staff and is never produced or
	// overwritten by status derivation.
	Cancelled
)

func getOverallStatusStrings() map[OverallStatus]string {
	return map[OverallStatus]string{
		OverallUnknown: "Unknown",
		Created:        "Created",
		InProgress:     "InProgress",
		Delayed:        "Delayed",
		Completed:      "Completed",
		Cancelled:      "Cancelled",
	}
}

func getValidOverallStatusStrings() map[OverallStatus]string {
	//nolint:exhaustive // OverallUnknown is intentionally excluded as it's invalid
	return map[OverallStatus]string{
		Created:    "Created",
		InProgress: "InProgress",
		Delayed:    "Delayed",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the OverallStatus value is valid.
func (s OverallStatus) Validate() error {
	if _, ok := getValidOverallStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"overall status is invalid", fmt.Errorf("%d is not a valid overall status", s))
	}
	return nil
}

// String returns the string representation of the status.
func (s OverallStatus) String() string {
	if name, ok := getOverallStatusStrings()[s]; ok {
		return name
	}
	return getOverallStatusStrings()[OverallUnknown]
}

// Risk rates how likely the shipment is to miss its commitments.
// Derived from blocked steps, open exceptions, and approaching deadlines.
type Risk int

const (
	// RiskUnknown represents an invalid or undefined risk rating.
	RiskUnknown Risk = iota

	// OnTrack: nothing blocked, no worrying exceptions, no looming deadlines.
	OnTrack

	// AtRisk: an open exception rates the shipment at risk, or a non-done
	// step is overdue or due within the look-ahead window.
	AtRisk

	// RiskBlocked: a step is blocked or an open exception rates the
	// shipment blocked. Dominates AtRisk.
	RiskBlocked
)

func getRiskStrings() map[Risk]string {
	return map[Risk]string{
		RiskUnknown: "Unknown",
		OnTrack:     "OnTrack",
		AtRisk:      "AtRisk",
		RiskBlocked: "Blocked",
	}
}

func getValidRiskStrings() map[Risk]string {
	//nolint:exhaustive // RiskUnknown is intentionally excluded as it's invalid
	return map[Risk]string{
		OnTrack:     "OnTrack",
		AtRisk:      "AtRisk",
		RiskBlocked: "Blocked",
	}
}

// Validate checks if the Risk value is valid.
func (r Risk) Validate() error {
	if _, ok := getValidRiskStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"risk is invalid", fmt.Errorf("%d is not a valid risk", r))
	}
	return nil
}

// String returns the string representation of the risk rating.
func (r Risk) String() string {
	if name, ok := getRiskStrings()[r]; ok {
		return name
	}
	return getRiskStrings()[RiskUnknown]
}

// OverallStatusFromString parses an overall status name as stored or
// supplied by calling layers. Returns an error for unrecognized names.
func OverallStatusFromString(name string) (OverallStatus, error) {
	for status, s := range getValidOverallStatusStrings() {
		if s == name {
			return status, nil
		}
	}
	return OverallUnknown, errs.NewValueIsInvalidErrorWithCause(
		"overall status", fmt.Errorf("%q is not a valid overall status name", name))
}

// RiskFromString parses a risk rating name. Returns an error for
// unrecognized names.
func RiskFromString(name string) (Risk, error) {
	for risk, s := range getValidRiskStrings() {
		if s == name {
			return risk, nil
		}
	}
	return RiskUnknown, errs.NewValueIsInvalidErrorWithCause(
		"risk", fmt.Errorf("%q is not a valid risk name", name))
}
