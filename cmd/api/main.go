package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"marketplace/docs"
	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/database/migration"
	handlers "marketplace/internal/http/handler"
	"marketplace/internal/http/middleware"
	"marketplace/internal/logging"
	"marketplace/internal/metrics"
	"marketplace/internal/otel"
	"marketplace/internal/repository"
	"marketplace/internal/service"
)

// @title Marketplace API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logrus.NewEntry(logging.New(cfg.LogLevel, cfg.Location()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	db, sqlDB, err := database.Open(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer sqlDB.Close()

	if cfg.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log); err != nil {
			log.WithError(err).Fatal("database migration failed")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	uowMetrics, err := metrics.NewUnitOfWork(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register unit of work metrics")
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}

	// One unit of work per operation, all sharing the logger and commit metrics
	uow := repository.NewFactory(db,
		repository.WithLogger(log),
		repository.WithCommitObserver(uowMetrics.Observe),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and tags the request span
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, handlers.Services{
		DB:        uow,
		Catalog:   service.NewCatalogService(uow),
		Community: service.NewCommunityService(uow),
		Messaging: service.NewMessagingService(uow),
		Orders:    service.NewOrderService(uow),
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.WithError(err).Warn("tracing shutdown failed")
	}
}
