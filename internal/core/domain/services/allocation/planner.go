// Package allocation plans goods allocations against received lots. The
// planner is pure: it decides per requested lot whether to grant, how much
// to grant, and why a lot is skipped, leaving persistence and atomicity to
// the calling use case.
package allocation

import (
	"shiptrack/internal/core/domain/model/inventory"
	"shiptrack/internal/core/domain/model/kernel"
)

// Skip reasons reported back to the caller. Skipped lots never fail the
// batch; the remaining requests still proceed.
const (
	SkipUnknownLot       = "unknown_lot"
	SkipAlreadyAllocated = "already_allocated"
	SkipNotEligible      = "not_eligible"
	SkipExhausted        = "exhausted"
)

// Request asks for a quantity from one lot. Requests above the lot's
// remaining quantity are clamped, not rejected.
type Request struct {
	LotID    kernel.UUID
	Quantity int
}

// LotState is the planner's read-only view of one candidate lot.
type LotState struct {
	Lot *inventory.GoodsLot

	// TakenQuantity is the sum of the lot's existing allocations.
	TakenQuantity int

	// AlreadyAllocated is true when an allocation for this lot and the
	// target step already exists. Such requests are skipped, keeping the
	// operation idempotent per lot and step.
	AlreadyAllocated bool

	// HasInEntry is true when the lot's receipt has already been
	// materialized as an IN ledger entry. Lots received before ledger
	// tracking get their IN entry written alongside the first OUT.
	HasInEntry bool
}

// Grant is one planned allocation.
type Grant struct {
	Lot           *inventory.GoodsLot
	TakenQuantity int

	// NeedsInEntry signals that the lot's IN ledger entry must be written
	// before the OUT entry of this grant.
	NeedsInEntry bool
}

// Skip explains why a requested lot yields no allocation.
type Skip struct {
	LotID  kernel.UUID
	Reason string
}

// Plan is the planner's verdict over one request batch.
type Plan struct {
	Grants []Grant
	Skips  []Skip
}

// Planner decides allocations. It is stateless and safe for concurrent use.
type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

// Scope describes the allocating shipment: its own identity, the shipments
// it pools goods with, and its customer parties.
type Scope struct {
	ShipmentID       kernel.UUID
	LinkedShipments  []kernel.UUID
	CustomerPartyIDs []kernel.UUID
}

// Plan walks the requests in order. Each request is granted the smaller of
// its asked quantity and the lot's remaining quantity; lots that are
// unknown, already allocated to the step, outside the shipment's pooling
// scope, or exhausted are skipped with a reason.
func (p *Planner) Plan(
	requests []Request,
	lots map[kernel.UUID]LotState,
	scope Scope,
) Plan {
	plan := Plan{}
	granted := make(map[kernel.UUID]bool, len(requests))

	for _, req := range requests {
		state, ok := lots[req.LotID]
		if !ok || state.Lot == nil {
			plan.Skips = append(plan.Skips, Skip{LotID: req.LotID, Reason: SkipUnknownLot})
			continue
		}
		if state.AlreadyAllocated || granted[req.LotID] {
			plan.Skips = append(plan.Skips, Skip{LotID: req.LotID, Reason: SkipAlreadyAllocated})
			continue
		}
		if !eligible(state.Lot, scope) {
			plan.Skips = append(plan.Skips, Skip{LotID: req.LotID, Reason: SkipNotEligible})
			continue
		}

		take := clamp(req.Quantity, state.Lot.Quantity()-state.TakenQuantity)
		if take == 0 {
			plan.Skips = append(plan.Skips, Skip{LotID: req.LotID, Reason: SkipExhausted})
			continue
		}

		granted[req.LotID] = true
		plan.Grants = append(plan.Grants, Grant{
			Lot:           state.Lot,
			TakenQuantity: take,
			NeedsInEntry:  !state.HasInEntry,
		})
	}

	return plan
}

// eligible checks the lot against the shipment's pooling scope. A lot
// received on the shipment itself is always usable. A lot received on a
// linked shipment is usable only when its customer scope covers one of the
// shipment's customer parties, or the lot applies to all customers.
func eligible(lot *inventory.GoodsLot, scope Scope) bool {
	if lot.ShipmentID().IsEqual(scope.ShipmentID) {
		return true
	}

	linked := false
	for _, id := range scope.LinkedShipments {
		if lot.ShipmentID().IsEqual(id) {
			linked = true
			break
		}
	}
	if !linked {
		return false
	}

	if lot.AppliesToAllCustomers() {
		return true
	}
	party := lot.CustomerPartyID()
	if party == nil {
		return false
	}
	for _, id := range scope.CustomerPartyIDs {
		if party.IsEqual(id) {
			return true
		}
	}
	return false
}

// clamp bounds the asked quantity to [0, available].
func clamp(asked, available int) int {
	if asked < 0 {
		asked = 0
	}
	if available < 0 {
		available = 0
	}
	if asked > available {
		return available
	}
	return asked
}
