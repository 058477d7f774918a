// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the tracking system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The subpackages include:
//   - derivedstatus: folds step statuses and open exceptions into a shipment's
//     overall status, risk and deadline alerts
//   - sequencing: workflow ordering rules that reject tracking data entered
//     ahead of its predecessor step
//   - workflow: the registry of workflow templates and their evaluators
//   - allocation: pure planning of goods allocation from received lots
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
