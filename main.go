package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-tourism-content/app/tracer"
	"github.com/FACorreiaa/go-tourism-content/config"
	"github.com/FACorreiaa/go-tourism-content/internal/container"
	"github.com/FACorreiaa/go-tourism-content/internal/router"
)

// @title						Tourism Content API
// @version					1.0
// @description				Generates social media content for tourism operators from cached templates or live LLM providers.
// @BasePath					/api/v1
// @schemes					http https
// @accept						json
// @produce					json
func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Application shut down complete.")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	telemetry, err := tracer.InitTracingAndMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	c, err := container.NewContainer(ctx, &cfg, logger, container.Options{})
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer c.Close()

	// Metrics go on their own listener when a separate port is configured.
	metricsPort := cfg.Handlers.Prometheus.Port
	separateMetrics := metricsPort != "" && metricsPort != cfg.Server.HTTPPort

	routerCfg := &router.Config{
		ContentHandler: c.ContentHandler,
		PublishHandler: c.PublishHandler,
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.Timeout,
	}
	if !separateMetrics {
		routerCfg.MetricsHandler = telemetry.Handler()
	}

	servers := []*http.Server{{
		Addr:              ":" + cfg.Server.HTTPPort,
		Handler:           router.SetupRouter(routerCfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Responses wait on the provider call, bounded by the request timeout.
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}}
	if separateMetrics {
		mux := http.NewServeMux()
		mux.Handle("/metrics", telemetry.Handler())
		servers = append(servers, &http.Server{
			Addr:              ":" + metricsPort,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		})
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
		if len(errs) == 0 {
			logger.Info("HTTP server gracefully stopped")
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

// setupLogger configures and returns the application logger.
func setupLogger(cfg config.Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)

	if !cfg.Production() {
		// Colored logs for development
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      min(level, slog.LevelDebug),
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
