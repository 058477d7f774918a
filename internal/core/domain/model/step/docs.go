// Package step contains the Step aggregate: one unit of work inside a
// shipment's workflow, carrying a status, SLA deadline timestamps, and a
// schema-less field value tree.
//
// Steps are created by instantiating a workflow template and mutated through
// field edits and status transitions. Status transitions are where the
// lifecycle timestamps (started_at, due_at, completed_at) are stamped and
// cleared; see Step.ChangeStatus for the exact rules.
package step
