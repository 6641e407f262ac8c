package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/it-Portal2/bidchemz-logistics-sub001/docs"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/app"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/config"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/database"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/database/migration"
	handlers "github.com/it-Portal2/bidchemz-logistics-sub001/internal/http/handler"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/http/middleware"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/logger"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/otel"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/ratelimit"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// @title BidChemz Logistics API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	appLog, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	slog.SetDefault(appLog)

	if err := run(cfg, appLog); err != nil {
		appLog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, log)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	comp, err := app.Build(cfg, app.Options{DB: db, Store: objStore, Registry: reg, Log: log})
	if err != nil {
		return err
	}

	var limiterStore fiber.Storage
	if cfg.Redis.URL != "" {
		rs, err := ratelimit.NewRedisStorage(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rs.Close()
		limiterStore = rs
		log.Info("rate limiter using redis")
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	// Leave room for multipart framing around the largest accepted document.
	bodyLimit := int(cfg.Marketplace.MaxUploadBytes) + 1<<20

	server := fiber.New(fiber.Config{
		AppName:      "bidchemz-logistics",
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	// Register global middleware
	server.Use(middleware.RequestID())
	server.Use(otelfiber.Middleware())
	server.Use(middleware.Logger(log))
	server.Use(promMiddleware.Handler())
	server.Use(middleware.CORS(cfg.CORSOrigin))

	handlers.RegisterRoutes(server, handlers.Deps{
		DB:       db,
		Tokens:   comp.Tokens,
		Services: comp.Services,
		Limits: handlers.Limits{
			Max:     cfg.RateLimit.Max,
			AuthMax: cfg.RateLimit.AuthMax,
			Window:  cfg.RateLimit.Window,
			Storage: limiterStore,
		},
		MaxUploadBytes: cfg.Marketplace.MaxUploadBytes,
		Metrics:        reg,
	})

	// Swagger UI with dynamic host and scheme
	server.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	comp.Sweeper.Start(ctx)

	listenErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("http server listening", "addr", addr, "env", cfg.Env)
		listenErr <- server.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		comp.Sweeper.Stop()
		comp.Dispatcher.Wait()
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Warn("http shutdown", "error", err)
	}
	comp.Sweeper.Stop()
	comp.Dispatcher.Wait()
	log.Info("shutdown complete")
	return nil
}
