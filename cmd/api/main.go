package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inletdocs/pdf-insight-api/docs"
	"github.com/inletdocs/pdf-insight-api/internal/auth"
	"github.com/inletdocs/pdf-insight-api/internal/config"
	"github.com/inletdocs/pdf-insight-api/internal/database"
	"github.com/inletdocs/pdf-insight-api/internal/http/handler"
	"github.com/inletdocs/pdf-insight-api/internal/http/middleware"
	"github.com/inletdocs/pdf-insight-api/internal/http/router"
	"github.com/inletdocs/pdf-insight-api/internal/jobs"
	"github.com/inletdocs/pdf-insight-api/internal/logger"
	"github.com/inletdocs/pdf-insight-api/internal/metrics"
	"github.com/inletdocs/pdf-insight-api/internal/pipeline"
	"github.com/inletdocs/pdf-insight-api/internal/repository"
	"github.com/inletdocs/pdf-insight-api/internal/storage"
	"go.uber.org/zap"
)

// @title PDF Insight API
// @version 1.0
// @description Document analysis API that extracts text, metadata, statistics and sensitive data indicators from PDF files

// @contact.name API Support
// @contact.email support@inletdocs.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for admin operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging", "production":
		if host := os.Getenv("SWAGGER_HOST"); host != "" {
			docs.SwaggerInfo.Host = host
		} else {
			// An empty host makes swagger-ui target whatever host serves it
			docs.SwaggerInfo.Host = ""
			log.Warn("SWAGGER_HOST not set, swagger requests will target the serving host")
		}
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database with retry logic
	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize document storage
	store, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Prometheus collectors
	m := metrics.New()

	// Repositories
	reportRepo := repository.NewReportRepository(db)

	// Analysis pipeline
	pl := pipeline.New(store, reportRepo, m, &cfg.Pipeline, log)
	pl.Start()

	// Requeue documents interrupted by a previous shutdown
	if err := pl.Recover(ctx); err != nil {
		log.Warn("Failed to recover interrupted reports", zap.Error(err))
	}

	// Middleware
	authMiddleware := auth.NewMiddleware(&cfg.Auth, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	reportHandler := handler.NewReportHandler(reportRepo, pl, store, log)
	documentHandler := handler.NewDocumentHandler(store, reportRepo, pl, cfg.Storage.MaxUploadSizeMB, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		m,
		authMiddleware,
		rateLimiter,
		reportHandler,
		documentHandler,
	)

	// Background jobs: container scan and report retention
	var scheduler *jobs.Scheduler
	if cfg.Watcher.Enabled || cfg.Retention.Enabled {
		scheduler = jobs.NewScheduler(log)

		if cfg.Watcher.Enabled {
			if err := jobs.RegisterScanJob(scheduler, store, reportRepo, pl, log, cfg.Watcher.ScanCron); err != nil {
				log.Error("Failed to register scan job", zap.Error(err))
			} else {
				log.Info("Container scan job registered", zap.String("cron_expr", cfg.Watcher.ScanCron))
			}
		}

		if cfg.Retention.Enabled {
			if err := jobs.RegisterRetentionJob(scheduler, reportRepo, store, cfg.Retention.MaxAge(), log, cfg.Retention.Cron); err != nil {
				log.Error("Failed to register retention job", zap.Error(err))
			} else {
				log.Info("Retention job registered",
					zap.String("cron_expr", cfg.Retention.Cron),
					zap.Int("max_age_days", cfg.Retention.MaxAgeDays),
				)
			}
		}

		scheduler.Start()
	} else {
		log.Info("Background jobs disabled",
			zap.Bool("watcher_enabled", cfg.Watcher.Enabled),
			zap.Bool("retention_enabled", cfg.Retention.Enabled),
		)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler first so no new documents are enqueued
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Drain the analysis pipeline
		plCtx, plCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer plCancel()
		if err := pl.Stop(plCtx); err != nil {
			log.Warn("Pipeline did not drain cleanly", zap.Error(err))
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
