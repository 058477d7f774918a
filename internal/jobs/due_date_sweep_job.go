package jobs

import (
	"context"
	"log/slog"

	"shiptrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DueDateSweepJob periodically re-derives every active shipment's status,
// risk and alerts. Time passing is its only input: a step crossing its due
// date flips the shipment to AtRisk and raises the overdue alert without
// anyone editing a step.
type DueDateSweepJob struct {
	uowFactory commands.ShipmentUoWFactory
	handler    commands.RefreshShipmentStatusCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDueDateSweepJob creates a new job for sweeping shipment due dates.
// Uses RefreshShipmentStatusCommandHandler to refresh each active shipment
// once per minute.
func NewDueDateSweepJob(
	uowFactory commands.ShipmentUoWFactory,
	handler commands.RefreshShipmentStatusCommandHandler,
	logger *slog.Logger,
) *DueDateSweepJob {
	return &DueDateSweepJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "due_date_sweep_job"),
	}
}

// Start begins the due date sweep job to run every minute.
func (j *DueDateSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Due date sweep job started (running every minute)")
	return nil
}

// Stop stops the due date sweep job.
func (j *DueDateSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Due date sweep job stopped")
}

// sweep refreshes every active shipment. Each shipment gets its own
// transaction, so one failure never blocks the rest of the sweep.
func (j *DueDateSweepJob) sweep(ctx context.Context) {
	uow := j.uowFactory.Create()
	ids, err := uow.ShipmentRepository().GetActiveIDs(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Due date sweep failed to list active shipments", "error", err)
		return
	}

	for _, id := range ids {
		cmd, err := commands.NewRefreshShipmentStatusCommand(id, false)
		if err != nil {
			j.logger.ErrorContext(ctx, "Due date sweep built an invalid command", "shipment_id", id.String(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Due date sweep failed for shipment", "shipment_id", id.String(), "error", err)
		}
	}
}
