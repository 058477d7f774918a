package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/domain/model/alert"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/core/domain/services/derivedstatus"
	"shiptrack/internal/core/ports"
)

// derivedRefresher recomputes a shipment's derived overall status and risk
// and fans deadline alerts out to their recipients. Shared by every handler
// that can move derived state; always runs inside the caller's transaction.
type derivedRefresher struct {
	aggregator derivedstatus.Aggregator
	directory  ports.UserDirectory
}

func newDerivedRefresher(directory ports.UserDirectory) derivedRefresher {
	return derivedRefresher{
		aggregator: derivedstatus.NewAggregator(),
		directory:  directory,
	}
}

// refresh aggregates the shipment's steps and open exceptions, persists the
// shipment when its derived state moved, and upserts one alert row per
// candidate and recipient. Alert inserts are keyed on (user, dedupe key),
// so repeated refreshes never duplicate rows. With touch set, an unchanged
// shipment is still written with a bumped updated_at.
func (r derivedRefresher) refresh(
	ctx context.Context,
	uow TrackingUoW,
	aggregate *shipment.Shipment,
	steps []*step.Step,
	now time.Time,
	touch bool,
) error {
	openExceptions, err := uow.ShipmentRepository().GetOpenExceptions(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	result := r.aggregator.Aggregate(steps, openExceptions, now)

	changed, err := aggregate.ApplyDerived(result.Overall, result.Risk, now)
	if err != nil {
		return err
	}
	if !changed && touch && !aggregate.IsCancelled() {
		aggregate.Touch(now)
		changed = true
	}
	if changed {
		if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if len(result.Alerts) == 0 {
		return nil
	}

	rows, err := r.fanOut(ctx, aggregate.ID(), result.Alerts, now)
	if err != nil {
		return err
	}
	return uow.AlertRepository().Upsert(ctx, rows)
}

// fanOut resolves recipients per candidate: the users holding the step's
// owner role plus the administrators, each at most once per candidate.
func (r derivedRefresher) fanOut(
	ctx context.Context,
	shipmentID kernel.UUID,
	candidates []derivedstatus.AlertCandidate,
	now time.Time,
) ([]alert.Alert, error) {
	admins, err := r.directory.GetAdminUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	roleUsers := make(map[string][]kernel.UUID)
	rows := make([]alert.Alert, 0, len(candidates))

	for _, candidate := range candidates {
		users, ok := roleUsers[candidate.OwnerRole]
		if !ok {
			users, err = r.directory.GetUserIDsByRole(ctx, candidate.OwnerRole)
			if err != nil {
				return nil, err
			}
			roleUsers[candidate.OwnerRole] = users
		}

		seen := make(map[kernel.UUID]bool, len(users)+len(admins))
		for _, userID := range append(append([]kernel.UUID{}, users...), admins...) {
			if seen[userID] {
				continue
			}
			seen[userID] = true
			rows = append(rows, alert.New(
				userID, shipmentID, candidate.StepID, candidate.Kind, candidate.DueAt, now))
		}
	}

	return rows, nil
}
