package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/geo"
	ordergw "service-dispatch/internal/gateway/orders"
	"service-dispatch/internal/http/handlers"
	"service-dispatch/internal/http/router"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/metrics"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/retry"
	"service-dispatch/internal/service/dispatch"
	"service-dispatch/internal/transport/kafka"
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the API container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the worker container: engine plus kafka intake and expiry sweep.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildBase(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the API container with default settings.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with default settings.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func newEngineConfig(cfg *config.Config) dispatch.Config {
	d := cfg.Dispatch
	return dispatch.Config{
		RadiiKm:          d.RadiiKm,
		Fanout:           d.Fanout,
		OfferTTL:         d.OfferTTL,
		MaxEscalations:   d.MaxEscalations,
		OperationTimeout: d.OperationTimeout,
		SettleGrace:      d.SettleGrace,
		Retry:            newRetryConfig(cfg),
	}
}

func newRetryConfig(cfg *config.Config) retry.Config {
	return retry.Config{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
	}
}

type gatewayIn struct {
	dig.In
	Pool    *pgxpool.Pool
	Config  *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"store_retries_total"`
}

func newOrdersGateway(in gatewayIn) *ordergw.RetryingGateway {
	return ordergw.NewRetryingGateway(
		ordergw.NewPostgresGateway(in.Pool),
		in.Logger,
		in.Retries,
		newRetryConfig(in.Config),
	)
}

func newCourierIndex(repo *repository.CourierRepo, cfg *config.Config) *geo.Index {
	return geo.NewIndex(repo, cfg.Dispatch.LocationFreshness)
}

type notifierIn struct {
	dig.In
	Config  *config.Config
	Logger  logx.Logger
	Dropped prometheus.Counter `name:"notifications_dropped_total"`
}

func newNotifier(in notifierIn) (*kafka.Publisher, error) {
	return kafka.NewPublisher(in.Logger, in.Config.Kafka.Brokers, in.Config.Kafka.NotificationsTopic, in.Dropped)
}

type engineIn struct {
	dig.In
	Config    *config.Config
	Logger    logx.Logger
	Ledger    *repository.AssignmentRepo
	Couriers  *repository.CourierRepo
	Offers    dispatch.OfferStore
	Index     *geo.Index
	Orders    *ordergw.RetryingGateway
	Publisher *kafka.Publisher
	Metrics   *metrics.Dispatch
	Retries   prometheus.Counter `name:"store_retries_total"`
}

func newEngine(in engineIn) *dispatch.Service {
	var notifier dispatch.Notifier
	if in.Publisher != nil {
		notifier = in.Publisher
	}
	return dispatch.New(dispatch.Deps{
		Ledger:   in.Ledger,
		Offers:   in.Offers,
		Index:    in.Index,
		Couriers: in.Couriers,
		Orders:   in.Orders,
		Notifier: notifier,
		Metrics:  in.Metrics,
		Retries:  in.Retries,
		Logger:   in.Logger,
	}, newEngineConfig(in.Config))
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewAssignmentRepo,
		repository.NewCourierRepo,
		newCourierIndex,
		newOrdersGateway,
		newOfferStoreBackend,
		newOfferStore,
		newNotifier,
		newEngine,
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewDispatchUsecase,
		handlers.NewDispatchHandler,
		handlers.NewCourierUsecase,
		handlers.NewCourierHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		router.New,
		serverProvider,
	)
}
