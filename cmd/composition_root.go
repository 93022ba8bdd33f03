package cmd

import (
	"log/slog"

	httpadapter "kitchenpos/internal/adapters/in/http"
	"kitchenpos/internal/adapters/out/catalogfile"
	"kitchenpos/internal/adapters/out/metrics"
	"kitchenpos/internal/adapters/out/wshub"
	"kitchenpos/internal/core/application/usecases/commands"
	"kitchenpos/internal/core/application/usecases/queries"
	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/core/ports"
	"kitchenpos/internal/jobs"

	"github.com/labstack/echo/v4"
)

// CompositionRoot owns every long-lived object of the process. Nothing is global:
// the scheduler, the hub and the metrics registry live here and are handed out.
type CompositionRoot struct {
	configs    Config
	logger     *slog.Logger
	clock      kernel.Clock
	policy     *promo.Policy
	uowFactory ports.UnitOfWorkFactory
	catalog    ports.CatalogProvider
	metrics    *metrics.Recorder
	hub        *wshub.Hub
	scheduler  *jobs.DeliveryScheduler
	orderLocks *commands.OrderLocks
}

func NewCompositionRoot(
	configs Config,
	uowFactory ports.UnitOfWorkFactory,
	clock kernel.Clock,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	policy, err := promo.NewPolicy(configs.PromoTZ, configs.PromoWeekday, configs.PromoCategory, configs.PromoType)
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewRecorder()
	c := &CompositionRoot{
		configs:    configs,
		logger:     logger,
		clock:      clock,
		policy:     policy,
		uowFactory: uowFactory,
		catalog:    catalogfile.NewProvider(configs.MenuPath, logger),
		orderLocks: commands.NewOrderLocks(),
		metrics:    recorder,
		hub: wshub.NewHub(logger,
			wshub.WithObserverGauge(recorder.ObserverGauge()),
			wshub.WithAllowedOrigins(configs.WSAllowedOrigins...),
		),
	}

	deliverHandler := c.CreateDeliverReadyOrderCommandHandler()
	c.scheduler = jobs.NewDeliveryScheduler(&deliverHandler, configs.DeliveryGracePeriod, logger)

	return c, nil
}

func (c *CompositionRoot) Hub() *wshub.Hub {
	return c.hub
}

func (c *CompositionRoot) Scheduler() *jobs.DeliveryScheduler {
	return c.scheduler
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.orderLocks, c.catalog, c.policy, c.clock, c.hub, c.scheduler, c.metrics)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.orderLocks, c.clock, c.hub, c.scheduler, c.metrics)
}

func (c *CompositionRoot) CreateDeliverReadyOrderCommandHandler() commands.DeliverReadyOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliverReadyOrderCommandHandler(f, c.orderLocks, c.clock, c.hub, c.metrics)
}

func (c *CompositionRoot) CreateSetPromoOverrideCommandHandler() commands.SetPromoOverrideCommandHandler {
	var f commands.PromoUoWFactory = FuncPromoUoWFactory(func() commands.PromoUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetPromoOverrideCommandHandler(f, c.policy, c.clock, c.configs.PromoConfirmText)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetPromoStatusQueryHandler() queries.GetPromoStatusQueryHandler {
	return queries.NewGetPromoStatusQueryHandler(c.uowFactory.Create().PromoStateRepository(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateGetMenuQueryHandler() queries.GetMenuQueryHandler {
	return queries.NewGetMenuQueryHandler(c.catalog)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.scheduler, c.CreateListOrdersQueryHandler(), c.logger)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateSetPromoOverrideCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetPromoStatusQueryHandler(),
		c.CreateGetMenuQueryHandler(),
	)
	return httpadapter.NewRouter(server, httpadapter.RouterOptions{
		Logger:    c.logger,
		Observers: c.hub,
		Metrics:   c.metrics.Handler(),
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPromoUoWFactory func() commands.PromoUoW

func (f FuncPromoUoWFactory) Create() commands.PromoUoW {
	return f()
}
