// Package derivedstatus computes the shipment-level overall status and risk
// rating from step statuses and open exceptions. The computation is a pure
// function; the alert side effect is returned as candidate rows for the
// caller to upsert, keeping the service deterministic and trivially testable.
package derivedstatus

import (
	"time"

	"shiptrack/internal/core/domain/model/alert"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/step"
)

// DueSoonWindow is the look-ahead within which a pending deadline already
// rates the shipment at risk and raises a due-soon alert.
const DueSoonWindow = 12 * time.Hour

// AlertCandidate is one deadline alert the caller should fan out to the
// step's owner role and to admin users. Deduplication happens at the
// persistence layer via the candidate's dedupe key.
type AlertCandidate struct {
	StepID    kernel.UUID
	OwnerRole string
	Kind      alert.Kind
	DueAt     time.Time
}

// DedupeKey returns the uniqueness key for this candidate.
func (c AlertCandidate) DedupeKey() string {
	return alert.DedupeKey(c.StepID, c.Kind)
}

// Result is one complete derivation: the overall status, the risk rating,
// and the deadline alerts implied by the same due-date data.
type Result struct {
	Overall shipment.OverallStatus
	Risk    shipment.Risk
	Alerts  []AlertCandidate
}

// Aggregator derives shipment-level state. Stateless; safe for concurrent use.
type Aggregator struct{}

// NewAggregator creates a new Aggregator instance.
func NewAggregator() Aggregator {
	return Aggregator{}
}

// Aggregate computes overall status and risk for one shipment.
//
// Overall status rules, first match wins:
//   - no steps                      -> Created
//   - all steps Done                -> Completed
//   - any step Blocked              -> Delayed
//   - any step InProgress or Done   -> InProgress
//   - otherwise                     -> Created
//
// Risk rules, first match wins:
//   - any step Blocked, or any open exception rated Blocked -> Blocked
//   - any open exception rated AtRisk                       -> AtRisk
//   - any non-Done step overdue or due within DueSoonWindow -> AtRisk
//   - otherwise                                             -> OnTrack
//
// For every non-Done step with a deadline that is overdue or inside the
// window, one alert candidate is emitted (kind overdue or due-soon).
func (Aggregator) Aggregate(
	steps []*step.Step,
	openExceptions []*shipment.Exception,
	now time.Time,
) Result {
	result := Result{
		Overall: deriveOverall(steps),
		Alerts:  collectAlerts(steps, now),
	}
	result.Risk = deriveRisk(steps, openExceptions, now)
	return result
}

func deriveOverall(steps []*step.Step) shipment.OverallStatus {
	if len(steps) == 0 {
		return shipment.Created
	}

	allDone := true
	anyBlocked := false
	anyStarted := false
	for _, s := range steps {
		switch s.Status() {
		case step.Done:
			anyStarted = true
		case step.Blocked:
			allDone = false
			anyBlocked = true
		case step.InProgress:
			allDone = false
			anyStarted = true
		default:
			allDone = false
		}
	}

	switch {
	case allDone:
		return shipment.Completed
	case anyBlocked:
		return shipment.Delayed
	case anyStarted:
		return shipment.InProgress
	default:
		return shipment.Created
	}
}

func deriveRisk(steps []*step.Step, openExceptions []*shipment.Exception, now time.Time) shipment.Risk {
	for _, s := range steps {
		if s.Status() == step.Blocked {
			return shipment.RiskBlocked
		}
	}
	for _, e := range openExceptions {
		if e.IsOpen() && e.DefaultRisk() == shipment.RiskBlocked {
			return shipment.RiskBlocked
		}
	}

	for _, e := range openExceptions {
		if e.IsOpen() && e.DefaultRisk() == shipment.AtRisk {
			return shipment.AtRisk
		}
	}
	for _, s := range steps {
		if _, ok := deadlineKind(s, now); ok {
			return shipment.AtRisk
		}
	}

	return shipment.OnTrack
}

func collectAlerts(steps []*step.Step, now time.Time) []AlertCandidate {
	var candidates []AlertCandidate
	for _, s := range steps {
		kind, ok := deadlineKind(s, now)
		if !ok {
			continue
		}
		candidates = append(candidates, AlertCandidate{
			StepID:    s.ID(),
			OwnerRole: s.OwnerRole(),
			Kind:      kind,
			DueAt:     *s.DueAt(),
		})
	}
	return candidates
}

// deadlineKind classifies a step's deadline exposure. Done steps and steps
// without a deadline never raise alerts.
func deadlineKind(s *step.Step, now time.Time) (alert.Kind, bool) {
	if s.Status() == step.Done || s.DueAt() == nil {
		return "", false
	}
	dueAt := *s.DueAt()
	if !dueAt.After(now) {
		return alert.KindOverdue, true
	}
	if dueAt.Sub(now) <= DueSoonWindow {
		return alert.KindDueSoon, true
	}
	return "", false
}
