package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/daylight/internal/api/http"
	"github.com/i474232898/daylight/internal/config"
	"github.com/i474232898/daylight/internal/locations"
	"github.com/i474232898/daylight/internal/scheduler"
	"github.com/i474232898/daylight/internal/solar"
	"github.com/i474232898/daylight/internal/solar/sources"
	"github.com/i474232898/daylight/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	// Read-only location list; missing zones are looked up from coordinates.
	registry, err := locations.NewRegistry(cfg.Locations, cfg.Primary, locations.NewTZFResolver())
	if err != nil {
		zl.Fatal("invalid locations", zap.Error(err))
	}

	// Shared HTTP client for outbound source calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var source solar.Source
	switch cfg.Source {
	case config.SourceComputed:
		source = sources.NewComputedSource()
	default:
		source = sources.NewSunriseSunsetSource(httpClient, cfg.SunriseSunsetURL)
	}

	// Process-lifetime observation cache.
	cache := store.NewMemoryStore(cfg.DegradedCacheTTL)

	service := solar.NewService(cache, source, zl.Named("solar"))

	sched := scheduler.New(registry.All(), cfg.WarmInterval, service, zl.Named("scheduler"))
	if err := sched.Start(); err != nil {
		zl.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "daylight",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          20 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":             "ok",
			"service":            "daylight",
			"source":             source.Name(),
			"cachedObservations": cache.Len(),
		})
	})

	httpapi.RegisterRoutes(app, service, registry)

	go func() {
		zl.Info("http server starting", zap.String("port", cfg.Port), zap.String("source", source.Name()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Error("fiber server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}
