// Package alert defines the polled alert rows raised when a step is overdue
// or approaching its SLA deadline. Alerts are deduplicated per step and kind:
// persistence inserts them with insert-if-absent semantics keyed on
// (user, dedupe key), so re-running the derivation never produces duplicates.
package alert

import (
	"time"

	"shiptrack/internal/core/domain/model/kernel"
)

// Kind distinguishes an already-missed deadline from an approaching one.
type Kind string

const (
	KindOverdue Kind = "overdue"
	KindDueSoon Kind = "due-soon"
)

// DedupeKey builds the uniqueness key for one step/kind combination.
func DedupeKey(stepID kernel.UUID, kind Kind) string {
	return stepID.String() + ":" + string(kind)
}

// Alert is one notification row for one recipient. Rows are immutable;
// recipients poll and dismiss them in the UI layer.
type Alert struct {
	ID         kernel.UUID
	UserID     kernel.UUID
	ShipmentID kernel.UUID
	StepID     kernel.UUID
	Kind       Kind
	DedupeKey  string
	DueAt      time.Time
	CreatedAt  time.Time
}

// New builds an alert row for one recipient.
func New(userID, shipmentID, stepID kernel.UUID, kind Kind, dueAt, now time.Time) Alert {
	return Alert{
		ID:         kernel.NewUUID(),
		UserID:     userID,
		ShipmentID: shipmentID,
		StepID:     stepID,
		Kind:       kind,
		DedupeKey:  DedupeKey(stepID, kind),
		DueAt:      dueAt,
		CreatedAt:  now,
	}
}
