package step

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/fieldtree"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
)

var (
	// ErrStepIsNotConstructed is returned when a Step instance was not created
	// through the NewStep or RestoreStep factory methods.
	ErrStepIsNotConstructed = errors.New("Step must be created via NewStep or RestoreStep")
)

// Step represents one unit of work in a shipment's workflow. It is owned
// exclusively by its shipment: steps are created when a workflow template is
// instantiated and are never deleted independently.
//
// Step maintains these invariants:
//   - Must have valid identifiers for itself and its shipment
//   - Status transitions stamp and clear lifecycle timestamps consistently:
//     first entry into InProgress stamps started_at and, when an SLA is set,
//     computes due_at; entry into Done stamps completed_at; returning to
//     Pending clears all three (a reset, not a delete)
//   - Field values merge additively; a key is only removed via RemoveFields
//
// The field schema carried by the step is advisory: it drives UI rendering
// and required-field checks upstream, never storage-level rejection here.
type Step struct {
	id              kernel.UUID
	shipmentID      kernel.UUID
	sequenceIndex   int
	name            string
	ownerRole       string
	status          Status
	slaHours        *int
	dueAt           *time.Time
	startedAt       *time.Time
	completedAt     *time.Time
	fields          fieldtree.Tree
	schema          fieldtree.Tree
	notes           string
	customerVisible bool
	isExternal      bool

	isConstructed bool
}

// NewStep creates a Pending step for a freshly instantiated workflow.
// slaHours may be nil when the step carries no deadline.
func NewStep(
	id kernel.UUID,
	shipmentID kernel.UUID,
	sequenceIndex int,
	name string,
	ownerRole string,
	slaHours *int,
	schema fieldtree.Tree,
	customerVisible bool,
	isExternal bool,
) (*Step, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if sequenceIndex < 0 {
		return nil, errs.NewValueIsInvalidError("sequenceIndex")
	}
	if slaHours != nil && *slaHours <= 0 {
		return nil, errs.NewValueIsInvalidError("slaHours")
	}
	if schema == nil {
		schema = fieldtree.New()
	}

	return &Step{
		id:              id,
		shipmentID:      shipmentID,
		sequenceIndex:   sequenceIndex,
		name:            name,
		ownerRole:       ownerRole,
		status:          Pending,
		slaHours:        slaHours,
		fields:          fieldtree.New(),
		schema:          schema,
		customerVisible: customerVisible,
		isExternal:      isExternal,
		isConstructed:   true,
	}, nil
}

// RestoreStep reconstructs a step from persistence without re-running the
// creation-time defaults. The stored status and timestamps are trusted.
func RestoreStep(
	id kernel.UUID,
	shipmentID kernel.UUID,
	sequenceIndex int,
	name string,
	ownerRole string,
	status Status,
	slaHours *int,
	dueAt, startedAt, completedAt *time.Time,
	fields fieldtree.Tree,
	schema fieldtree.Tree,
	notes string,
	customerVisible bool,
	isExternal bool,
) (*Step, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = fieldtree.New()
	}
	if schema == nil {
		schema = fieldtree.New()
	}

	return &Step{
		id:              id,
		shipmentID:      shipmentID,
		sequenceIndex:   sequenceIndex,
		name:            name,
		ownerRole:       ownerRole,
		status:          status,
		slaHours:        slaHours,
		dueAt:           dueAt,
		startedAt:       startedAt,
		completedAt:     completedAt,
		fields:          fields,
		schema:          schema,
		notes:           notes,
		customerVisible: customerVisible,
		isExternal:      isExternal,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Step instance was properly constructed.
func (s *Step) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStepIsNotConstructed
	}
	return nil
}

func (s *Step) ID() kernel.UUID            { return s.id }
func (s *Step) ShipmentID() kernel.UUID    { return s.shipmentID }
func (s *Step) SequenceIndex() int         { return s.sequenceIndex }
func (s *Step) Name() string               { return s.name }
func (s *Step) OwnerRole() string          { return s.ownerRole }
func (s *Step) Status() Status             { return s.status }
func (s *Step) SLAHours() *int             { return s.slaHours }
func (s *Step) DueAt() *time.Time          { return s.dueAt }
func (s *Step) StartedAt() *time.Time      { return s.startedAt }
func (s *Step) CompletedAt() *time.Time    { return s.completedAt }
func (s *Step) Fields() fieldtree.Tree     { return s.fields }
func (s *Step) Schema() fieldtree.Tree     { return s.schema }
func (s *Step) Notes() string              { return s.notes }
func (s *Step) CustomerVisible() bool      { return s.customerVisible }
func (s *Step) IsExternal() bool           { return s.isExternal }

// ChangeStatus moves the step to a new status and applies the timestamp side
// effects. now is the clock reading of the mutation; passing it in keeps the
// aggregate deterministic for callers and tests.
func (s *Step) ChangeStatus(newStatus Status, now time.Time) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	if newStatus == s.status {
		return nil
	}

	switch newStatus {
	case InProgress:
		if s.startedAt == nil {
			startedAt := now
			s.startedAt = &startedAt
			if s.slaHours != nil {
				dueAt := now.Add(time.Duration(*s.slaHours) * time.Hour)
				s.dueAt = &dueAt
			}
		}
	case Done:
		completedAt := now
		s.completedAt = &completedAt
	case Pending:
		// Reset: the step goes back to its just-instantiated shape.
		s.startedAt = nil
		s.completedAt = nil
		s.dueAt = nil
	case Blocked:
		// No timestamp side effects.
	case Unknown:
		// Unreachable: Validate rejected it above.
	}

	s.status = newStatus
	return nil
}

// MergeFields merges a field patch into the step's tree. Keys absent from
// the patch are left untouched.
func (s *Step) MergeFields(patch fieldtree.Tree) {
	if patch == nil {
		return
	}
	s.fields.Merge(patch)
}

// RemoveFields deletes the given field paths. Missing paths are ignored.
func (s *Step) RemoveFields(paths [][]string) {
	for _, path := range paths {
		s.fields.Remove(path...)
	}
}

// SetNotes replaces the step's free-text notes.
func (s *Step) SetNotes(notes string) {
	s.notes = notes
}
