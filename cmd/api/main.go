package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"mediaapi/internal/config"
	handlers "mediaapi/internal/http/handler"
	"mediaapi/internal/http/middleware"
	"mediaapi/internal/logger"
	"mediaapi/internal/otel"
	"mediaapi/internal/service"
	"mediaapi/internal/storage"
)

// @title Media API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid logger configuration")
	}
	log = log.With().Str("service", cfg.ServiceName).Str("env", cfg.Environment).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.ServiceName, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	// S3-compatible bucket acting as the media provider
	provider, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize media storage")
	}

	mediaSvc := service.NewMediaService(provider, service.UploadLimits{
		DefaultFolder: cfg.Upload.DefaultFolder,
		MaxFiles:      cfg.Upload.MaxFiles,
		MaxFileBytes:  cfg.Upload.MaxFileBytes,
	}, log)
	folderSvc := service.NewFolderService(provider)

	auth, err := middleware.NewAuthenticator(ctx, cfg.Auth, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize authentication")
	}
	if !cfg.Auth.Enabled {
		log.Warn().Msg("authentication disabled, /media routes are open")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.ServiceName,
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.Upload.BodyLimit,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Logger(log.With().Str("component", "access").Logger()))

	handlers.RegisterRoutes(app, handlers.Deps{
		Media:   mediaSvc,
		Folders: folderSvc,
		Health:  provider,
		Metrics: reg,
		Auth:    auth.Middleware(),
		Log:     log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("http server listening")
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown")
	}
	log.Info().Msg("stopped")
}
