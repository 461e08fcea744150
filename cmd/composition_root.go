package cmd

import (
	"context"

	httpin "fooddispatch/internal/adapters/in/http"
	"fooddispatch/internal/adapters/out/postgres"
	"fooddispatch/internal/adapters/out/redisstream"
	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/jobs"
	"fooddispatch/internal/metrics"
	"fooddispatch/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	uowFactory *postgres.GormUnitOfWorkFactory
	stream     *redisstream.Stream
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, rdb redis.UniversalClient, logger *zap.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		registry:   registry,
		metrics:    metrics.New(registry),
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		stream: redisstream.NewStream(rdb, redisstream.Config{
			Stream:       cfg.Stream.Name,
			Group:        cfg.Stream.Group,
			Consumer:     cfg.Stream.Consumer,
			BatchSize:    cfg.Dispatch.BatchSize,
			Block:        cfg.Dispatch.Block,
			ClaimMinIdle: cfg.Dispatch.ReclaimMinIdle,
			MaxLen:       cfg.Stream.MaxLen,
		}),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.stream, logger.Component(c.logger, "order_intake"))
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierActiveCommandHandler() commands.SetCourierActiveCommandHandler {
	return commands.NewSetCourierActiveCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	f := c.dispatchUoWFactory()
	return commands.NewAssignOrderCommandHandler(f, commands.NewAssignmentEngine(f))
}

func (c *CompositionRoot) CreateOrderLifecycleHandler() commands.OrderLifecycleHandler {
	return commands.NewOrderLifecycleHandler(c.dispatchUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	f := c.dispatchUoWFactory()
	return commands.NewDispatchOrderCommandHandler(f, commands.NewAssignmentEngine(f))
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCouriersQueryHandler() queries.GetCouriersQueryHandler {
	return queries.NewGetCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetKPIQueryHandler() queries.GetKPIQueryHandler {
	return queries.NewGetKPIQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersTimeseriesQueryHandler() queries.GetOrdersTimeseriesQueryHandler {
	return queries.NewGetOrdersTimeseriesQueryHandler(c.gormDB)
}

// CreateRouter wires every HTTP surface onto one echo instance.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	contract, err := httpin.LoadContract(ctx)
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		CreateCourier:    c.CreateCreateCourierCommandHandler(),
		SetCourierActive: c.CreateSetCourierActiveCommandHandler(),
		AssignOrder:      c.CreateAssignOrderCommandHandler(),
		Lifecycle:        c.CreateOrderLifecycleHandler(),
		Orders:           c.CreateGetOrdersQueryHandler(),
		Couriers:         c.CreateGetCouriersQueryHandler(),
		KPI:              c.CreateGetKPIQueryHandler(),
		Timeseries:       c.CreateGetOrdersTimeseriesQueryHandler(),
	}, c.metrics, c.cfg.ServiceName)

	return httpin.NewRouter(httpin.RouterConfig{
		InternalToken: c.cfg.HTTP.InternalToken,
		CORSOrigins:   c.cfg.HTTP.CORSOrigins,
		Gatherer:      c.registry,
	}, server, contract, c.metrics, logger.Component(c.logger, "http"))
}

// CreateDispatchWorker returns nil when dispatching is disabled.
func (c *CompositionRoot) CreateDispatchWorker() *jobs.DispatchWorker {
	if !c.cfg.Dispatch.Enabled {
		return nil
	}
	return jobs.NewDispatchWorker(c.stream, c.entryProcessor(), c.cfg.Dispatch.Backoff, c.logger)
}

// CreateJobManager schedules the gauge refresh and, with dispatching
// enabled, the reclaim of stale pending entries.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	scheduled := []jobs.Job{
		jobs.NewGaugeJob(c.CreateGetKPIQueryHandler(), c.metrics, c.cfg.Dispatch.GaugeInterval, c.logger),
	}
	if c.cfg.Dispatch.Enabled {
		scheduled = append(scheduled,
			jobs.NewReclaimJob(c.stream, c.entryProcessor(), c.cfg.Dispatch.ReclaimInterval, c.logger))
	}
	return jobs.NewJobManager(c.logger, scheduled...)
}

// Ping checks the stream connection.
func (c *CompositionRoot) Ping(ctx context.Context) error {
	return c.stream.Ping(ctx)
}

func (c *CompositionRoot) entryProcessor() *jobs.EntryProcessor {
	return jobs.NewEntryProcessor(c.stream, c.CreateDispatchOrderCommandHandler(), c.metrics,
		logger.Component(c.logger, "dispatch"))
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
