package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PickingReservationJob manages the scheduled retry of stock reservation.
// Runs every minute to move waiting pickings to assigned when stock frees up.
type PickingReservationJob struct {
	handler commands.ReservePendingPickingsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPickingReservationJob creates a new job for retrying picking reservations.
// Uses ReservePendingPickingsCommandHandler to process waiting pickings every minute.
func NewPickingReservationJob(
	handler commands.ReservePendingPickingsCommandHandler,
	logger *slog.Logger,
) *PickingReservationJob {
	return &PickingReservationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "picking_reservation_job"),
	}
}

// Start begins the picking reservation job to run every minute.
func (j *PickingReservationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReservePendingPickingsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Picking reservation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Picking reservation job started (running every minute)")
	return nil
}

// Stop stops the picking reservation job.
func (j *PickingReservationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Picking reservation job stopped")
}
