package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/awesomepeople/people/api/internal/config"
	"github.com/awesomepeople/people/api/internal/pkg/logger"
	"github.com/awesomepeople/people/api/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("worker")

	if !cfg.Events.Enabled {
		log.Warn("EVENTS_ENABLED is false, the API will not publish person events")
	}

	log.Info("starting worker service",
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("queue", cfg.Events.Queue),
	)

	// Create worker server
	workerServer := worker.NewServer(log, cfg)

	// Expose event counters for scraping
	var metricsApp *fiber.App
	if cfg.Worker.MetricsPort > 0 {
		metricsApp = newMetricsApp()
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Worker.MetricsPort)
			log.Info("serving worker metrics", zap.String("addr", addr))
			if err := metricsApp.Listen(addr); err != nil {
				log.Error("metrics listener failed", zap.Error(err))
			}
		}()
	}

	// Start worker in a goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- workerServer.Start()
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("shutting down worker...")
		workerServer.Stop()
	case err := <-errCh:
		if err != nil {
			log.Error("worker server error", zap.Error(err))
		}
	}

	if metricsApp != nil {
		_ = metricsApp.Shutdown()
	}

	log.Info("worker stopped")
}

// newMetricsApp serves the Prometheus registry and a liveness probe
func newMetricsApp() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/livez", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	return app
}
