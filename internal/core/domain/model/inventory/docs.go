// Package inventory contains the goods allocation ledger entities: received
// lots, one-time per-step allocations, append-only ledger entries, and the
// materialized per-owner balances.
//
// The ledger is the source of truth: balances are kept consistent with it by
// folding every entry in at insert time, and a lot's remaining quantity is
// always derived as quantity minus the sum of its allocations. Nothing in
// this package ever mutates a lot, an allocation, or a ledger entry after
// creation.
package inventory
