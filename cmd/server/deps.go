package main

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/config"
	"github.com/awesomepeople/people/api/internal/domain"
	"github.com/awesomepeople/people/api/internal/handler"
	"github.com/awesomepeople/people/api/internal/middleware"
	"github.com/awesomepeople/people/api/internal/pkg/database"
	"github.com/awesomepeople/people/api/internal/repository"
	"github.com/awesomepeople/people/api/internal/service"
	"github.com/awesomepeople/people/api/internal/worker"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Connections
	Store       repository.Store
	Redis       *database.RedisDB
	AsynqClient *asynq.Client

	// Services
	Publisher     *worker.Publisher
	QueryService  *service.QueryService
	RandomService *service.RandomService

	// Handlers
	Handlers *Handlers

	// Middleware
	RateLimitMiddleware *middleware.RateLimitMiddleware

	closeStore func()
}

// Handlers groups the HTTP handlers
type Handlers struct {
	People *handler.PeopleHandler
	Hello  *handler.HelloHandler
	Health *handler.HealthHandler
	Docs   *handler.DocsHandler
}

// initDependencies initializes all dependencies
func initDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	store, closeStore, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	deps.Store = store
	deps.closeStore = closeStore

	// Redis backs rate limiting and the event queue; both are optional.
	if cfg.RateLimit.Enabled || cfg.Events.Enabled {
		redisDB, err := database.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting and events disabled", zap.Error(err))
		} else {
			deps.Redis = redisDB
		}
	}

	var publisher service.EventPublisher
	if cfg.Events.Enabled && deps.Redis != nil {
		deps.AsynqClient = asynq.NewClient(worker.RedisOpt(cfg.Redis))
		deps.Publisher = worker.NewPublisher(deps.AsynqClient, cfg.Events.Queue, logger)
		publisher = deps.Publisher
	}

	deps.QueryService = service.NewQueryService(store, publisher, logger)
	deps.RandomService = service.NewRandomService(store, domain.ParseRandomPolicy(cfg.Random.Policy), logger)

	if cfg.RateLimit.Enabled && deps.Redis != nil {
		rlConfig := middleware.DefaultRateLimitConfig()
		rlConfig.Max = cfg.RateLimit.Max
		rlConfig.Window = time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		rlConfig.Logger = logger
		deps.RateLimitMiddleware = middleware.NewRateLimitMiddleware(deps.Redis, rlConfig)
	}

	deps.Handlers = initHandlers(deps)

	logger.Info("dependencies initialized",
		zap.String("store", cfg.Store.Driver),
		zap.String("random_policy", string(deps.RandomService.Policy())),
		zap.Bool("events", deps.Publisher != nil),
		zap.Bool("rate_limit", deps.RateLimitMiddleware != nil),
	)

	return deps, nil
}

// initHandlers initializes HTTP handlers
func initHandlers(deps *Dependencies) *Handlers {
	checks := []handler.Dependency{
		{Name: deps.Config.Store.Driver, Pinger: deps.Store},
	}
	if deps.Redis != nil {
		checks = append(checks, handler.Dependency{Name: "redis", Pinger: deps.Redis, Optional: true})
	}

	health := handler.NewHealthHandler(version, checks...)
	if deps.Publisher != nil {
		health.WithBreaker(deps.Publisher)
	}

	return &Handlers{
		People: handler.NewPeopleHandler(deps.QueryService, deps.RandomService, deps.Logger),
		Hello:  handler.NewHelloHandler(),
		Health: health,
		Docs:   handler.NewDocsHandler(),
	}
}

// Close closes all connections
func (d *Dependencies) Close() {
	if d.AsynqClient != nil {
		if err := d.AsynqClient.Close(); err != nil {
			d.Logger.Warn("failed to close asynq client", zap.Error(err))
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if d.closeStore != nil {
		d.closeStore()
	}
}
