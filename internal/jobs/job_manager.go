package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"kitchenpos/internal/core/application/usecases/queries"
	"kitchenpos/internal/core/domain/model/order"
)

// ReadyOrderLister is satisfied by queries.ListOrdersQueryHandler.
type ReadyOrderLister interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]order.Snapshot, error)
}

// JobManager owns the background work of the service and its startup recovery.
type JobManager struct {
	scheduler *DeliveryScheduler
	lister    ReadyOrderLister
	logger    *slog.Logger
}

func NewJobManager(scheduler *DeliveryScheduler, lister ReadyOrderLister, logger *slog.Logger) *JobManager {
	return &JobManager{
		scheduler: scheduler,
		lister:    lister,
		logger:    logger.With("component", "job_manager"),
	}
}

// StartAll starts the scheduler and re-arms a delivery timer for every persisted ready order.
func (jm *JobManager) StartAll(ctx context.Context) error {
	query, err := queries.NewListOrdersQuery(order.Ready.String())
	if err != nil {
		return fmt.Errorf("failed to build ready orders query: %w", err)
	}

	ready, err := jm.lister.Handle(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load ready orders: %w", err)
	}

	jm.scheduler.Start()
	for _, snapshot := range ready {
		jm.scheduler.Arm(snapshot.ID)
	}

	jm.logger.InfoContext(ctx, "Jobs started", "rearmed", len(ready))
	return nil
}

// StopAll stops the scheduler gracefully.
func (jm *JobManager) StopAll() {
	jm.scheduler.Stop()
}
