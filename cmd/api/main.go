package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-dashboard/internal/api/http"
	"github.com/spec-kit/ticket-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/ticket-dashboard/internal/config"
	"github.com/spec-kit/ticket-dashboard/internal/events"
	"github.com/spec-kit/ticket-dashboard/internal/observability"
	"github.com/spec-kit/ticket-dashboard/internal/persistence"
	"github.com/spec-kit/ticket-dashboard/internal/repository"
	"github.com/spec-kit/ticket-dashboard/internal/seed"
	"github.com/spec-kit/ticket-dashboard/internal/service"
	"github.com/spec-kit/ticket-dashboard/internal/thread"
	"github.com/spec-kit/ticket-dashboard/internal/worker"
)

func main() {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.Enabled() {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Data.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	demoSeed, threadSeed := cfg.Data.Seeds(startedAt)
	source, err := selectSource(cfg.Data, pg, demoSeed, logger)
	if err != nil {
		logger.Fatal("failed to select data source", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	ticketRepo := repository.NewMemoryTicketRepository()
	loaded, err := service.Bootstrap(ctx, source, ticketRepo, logger)
	if err != nil {
		logger.Fatal("failed to bootstrap tickets", zap.Error(err))
	}
	metrics.SetTicketsStored(loaded)
	logger.Info("thread synthesis seeded", zap.Int64("demo_seed", demoSeed), zap.Int64("thread_seed", threadSeed))

	dispatcher := events.NewInMemoryDispatcher()
	var publisher service.Publisher
	if redis.Enabled() {
		publisher = redis
	}
	notificationService := service.NewNotificationService(dispatcher, publisher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Threads:    thread.NewResolver(ticketRepo, thread.DefaultCatalog, threadSeed),
		Dispatcher: dispatcher,
		Metrics:    metrics,
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:           logger,
		Metrics:          metrics,
		Timeout:          cfg.App.RequestTimeout(),
		CORSAllowOrigins: cfg.App.CORSAllowOrigins,
	})

	healthHandler := handlers.NewHealthHandler(observability.ServiceName, cfg.App.Version, startedAt, map[string]handlers.DependencyCheck{
		"postgres": pg,
		"redis":    redis,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Tickets:   handlers.NewTicketsHandler(ticketService),
		Metrics:   metrics.Registry(),
		StaticDir: cfg.App.StaticDir,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func selectSource(cfg config.DataConfig, pg *persistence.Postgres, demoSeed int64, logger *zap.Logger) (seed.Source, error) {
	switch cfg.Source {
	case config.DataSourceEmpty:
		return seed.EmptySource{}, nil
	case config.DataSourcePostgres:
		if !pg.Enabled() {
			return nil, fmt.Errorf("data source %q needs POSTGRES_DSN", cfg.Source)
		}
		return seed.NewPostgresSource(pg.PoolHandle(), logger), nil
	default:
		return seed.DemoSource{Seed: demoSeed, Count: cfg.DemoTicketCount, Now: time.Now}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
