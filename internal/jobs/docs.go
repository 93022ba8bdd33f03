// Package jobs runs the background work of the order service.
//
// # Delivery timers
//
// DeliveryScheduler keeps at most one pending timer per ready order on a
// github.com/robfig/cron/v3 runner, using a one-shot schedule instead of a
// cron expression:
//
//	scheduler := jobs.NewDeliveryScheduler(&deliverHandler, 180*time.Second, logger)
//	scheduler.Arm(orderID)    // replaces any pending timer for orderID
//	scheduler.Cancel(orderID) // safe when nothing is pending
//
// When a timer fires it issues a DeliverReadyOrderCommand. The command re-reads the
// order inside a unit of work and only moves it to delivered if it is still ready, so
// a firing that races with a client transition is harmless. A firing whose timer was
// replaced by a later Arm is ignored.
//
// # Startup
//
// JobManager.StartAll starts the scheduler and re-arms a full grace period for every
// order persisted in the ready state, since timers do not survive a restart:
//
//	jobManager := jobs.NewJobManager(scheduler, listOrdersHandler, logger)
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatalf("Failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
package jobs
