// Package shipment contains the Shipment aggregate root, its derived status
// and risk enums, and the Exception entity that staff raise against a
// shipment while something is wrong.
//
// Overall status and risk are pure functions of the shipment's step statuses
// and open exceptions; the aggregate only stores the latest derivation so
// list views need no recomputation. The derivation itself lives in
// internal/core/domain/services/derivedstatus.
package shipment
