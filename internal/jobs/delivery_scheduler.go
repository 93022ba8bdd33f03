package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"kitchenpos/internal/core/application/usecases/commands"
	"kitchenpos/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultGracePeriod is how long a ready order waits before it is marked delivered.
	DefaultGracePeriod = 180 * time.Second

	fireTimeout = 30 * time.Second
)

// ReadyOrderDeliverer is satisfied by *commands.DeliverReadyOrderCommandHandler.
type ReadyOrderDeliverer interface {
	Handle(ctx context.Context, cmd commands.DeliverReadyOrderCommand) (bool, error)
}

// oneShotSchedule fires once, delay after the runner first looks at it, and never again.
// The deadline is anchored on the instant cron hands to Next, so every timer is measured
// on the runner's own clock. Next is only called from the cron loop goroutine.
type oneShotSchedule struct {
	delay time.Duration
	at    time.Time
}

func (s *oneShotSchedule) Next(t time.Time) time.Time {
	if s.at.IsZero() {
		s.at = t.Add(s.delay)
		return s.at
	}
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}

// slot is one armed timer. Its pointer identity tells a live firing from a superseded one.
type slot struct {
	entryID cron.EntryID
}

// DeliveryScheduler implements ports.DeliveryScheduler on top of a cron runner.
// Each ready order owns at most one one-shot cron entry.
type DeliveryScheduler struct {
	deliverer ReadyOrderDeliverer
	grace     time.Duration
	cron      *cron.Cron
	logger    *slog.Logger

	mu    sync.Mutex
	slots map[kernel.UUID]*slot
}

// NewDeliveryScheduler creates a stopped scheduler. A non-positive grace falls back to DefaultGracePeriod.
func NewDeliveryScheduler(deliverer ReadyOrderDeliverer, grace time.Duration, logger *slog.Logger) *DeliveryScheduler {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	logger = logger.With("component", "delivery_scheduler")
	runnerLogger := cronLogger{logger: logger}

	return &DeliveryScheduler{
		deliverer: deliverer,
		grace:     grace,
		cron:      cron.New(cron.WithLogger(runnerLogger), cron.WithChain(cron.Recover(runnerLogger))),
		logger:    logger,
		slots:     make(map[kernel.UUID]*slot),
	}
}

// Start runs the cron loop in its own goroutine.
func (s *DeliveryScheduler) Start() {
	s.cron.Start()
	s.logger.InfoContext(context.Background(), "Delivery scheduler started", "grace", s.grace.String())
}

// Stop discards every pending timer and waits for running deliveries to finish.
func (s *DeliveryScheduler) Stop() {
	s.mu.Lock()
	for id, armed := range s.slots {
		s.cron.Remove(armed.entryID)
		delete(s.slots, id)
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.InfoContext(context.Background(), "Delivery scheduler stopped")
}

func (s *DeliveryScheduler) Arm(id kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if previous, found := s.slots[id]; found {
		s.cron.Remove(previous.entryID)
	}

	armed := &slot{}
	armed.entryID = s.cron.Schedule(
		&oneShotSchedule{delay: s.grace},
		cron.FuncJob(func() { s.fire(id, armed) }),
	)
	s.slots[id] = armed
}

func (s *DeliveryScheduler) Cancel(id kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if armed, found := s.slots[id]; found {
		s.cron.Remove(armed.entryID)
		delete(s.slots, id)
	}
}

func (s *DeliveryScheduler) Pending(id kernel.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, found := s.slots[id]
	return found
}

func (s *DeliveryScheduler) fire(id kernel.UUID, armed *slot) {
	s.mu.Lock()
	if s.slots[id] != armed {
		s.mu.Unlock()
		return
	}
	delete(s.slots, id)
	s.cron.Remove(armed.entryID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()

	cmd, err := commands.NewDeliverReadyOrderCommand(id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Invalid delivery command", "orderID", id.String(), "error", err)
		return
	}

	delivered, err := s.deliverer.Handle(ctx, cmd)
	if err != nil {
		s.logger.ErrorContext(ctx, "Automatic delivery failed", "orderID", id.String(), "error", err)
		return
	}
	if delivered {
		s.logger.InfoContext(ctx, "Order delivered automatically", "orderID", id.String())
	}
}

// cronLogger routes cron's internal messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
