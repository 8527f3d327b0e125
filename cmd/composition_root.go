package cmd

import (
	"fmt"
	"log/slog"

	"courierhub/internal/adapters/in/http"
	"courierhub/internal/adapters/in/ws"
	"courierhub/internal/adapters/out/mapbox"
	"courierhub/internal/adapters/out/memory"
	"courierhub/internal/adapters/out/postgres"
	"courierhub/internal/adapters/out/postgres/orderrepo"
	"courierhub/internal/adapters/out/redispresence"
	"courierhub/internal/core/application/realtime"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/ports"
	"courierhub/internal/jobs"

	"github.com/redis/go-redis/v9"
)

type orderStore interface {
	ports.OrderStore
	ports.ActiveOrderFinder
}

type CompositionRoot struct {
	config   Config
	logger   *slog.Logger
	clock    ports.Clock
	store    orderStore
	presence ports.PresenceTracker
	routes   ports.RouteProvider

	redis *redis.Client
	hub   *ws.Hub

	dispatcher *realtime.Dispatcher
}

func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config: config,
		logger: logger,
		clock:  ports.SystemClock{},
	}

	store, err := root.createOrderStore()
	if err != nil {
		return nil, err
	}
	root.store = store

	presence, err := root.createPresence()
	if err != nil {
		return nil, err
	}
	root.presence = presence
	root.routes = root.createRouteProvider()

	root.hub = ws.NewHub(ws.Config{SendBufferSize: config.WSSendBufferSize}, logger)
	dispatcher, err := realtime.NewDispatcher(root.store, root.clock, root.hub, root.presence, logger)
	if err != nil {
		return nil, fmt.Errorf("create dispatcher: %w", err)
	}
	root.dispatcher = dispatcher

	return root, nil
}

func (c *CompositionRoot) createOrderStore() (orderStore, error) {
	switch c.config.StoreDriver {
	case StoreDriverMemory:
		c.logger.Warn("Using in-memory order store; orders are lost on restart")
		return memory.NewOrderStore(), nil
	case "", StoreDriverPostgres:
		db, err := postgres.Open(postgres.Config{
			Host:     c.config.DBHost,
			Port:     c.config.DBPort,
			User:     c.config.DBUser,
			Password: c.config.DBPassword,
			Name:     c.config.DBName,
			SSLMode:  c.config.DBSslMode,
		})
		if err != nil {
			return nil, err
		}
		return orderrepo.NewGormOrderRepository(db, c.config.StoreTimeout), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", c.config.StoreDriver)
	}
}

func (c *CompositionRoot) createPresence() (ports.PresenceTracker, error) {
	if c.config.RedisAddr == "" {
		return ports.NopPresence{}, nil
	}
	c.redis = redis.NewClient(&redis.Options{
		Addr:     c.config.RedisAddr,
		Password: c.config.RedisPassword,
	})
	return redispresence.NewPresenceStore(c.redis, c.logger)
}

func (c *CompositionRoot) createRouteProvider() ports.RouteProvider {
	if c.config.MapboxToken == "" {
		return mapbox.StraightLine{}
	}
	return mapbox.NewClient(c.config.MapboxBaseURL, c.config.MapboxToken, mapbox.WithLogger(c.logger))
}

func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) Dispatcher() *realtime.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateGetOrderRouteQueryHandler() queries.GetOrderRouteQueryHandler {
	return queries.NewGetOrderRouteQueryHandler(c.store, c.routes, c.clock)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.store)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.dispatcher,
		c.CreateGetOrderRouteQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateWebSocketHandler() (*ws.Handler, error) {
	return ws.NewHandler(c.hub, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.dispatcher, c.presence, jobs.Schedules{
		TopicSweep:  c.config.TopicSweepSchedule,
		StatsReport: c.config.StatsReportSchedule,
	}, c.logger)
}

// Close releases outbound connections. Call after the web server has stopped.
func (c *CompositionRoot) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
