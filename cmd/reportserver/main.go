// Command reportserver serves the derived QLFS tables as a read-only JSON
// API for the dashboard.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"qlfscli/internal/config"
	"qlfscli/internal/infrastructure"
	"qlfscli/internal/middleware"
	"qlfscli/internal/services"
	transport "qlfscli/internal/transport/http"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)
	svc := services.NewReportService(cfg, logger)

	// Generate the report up front so a broken input fails fast, not on
	// the first request.
	if _, err := svc.Report(context.Background()); err != nil {
		logger.Error("Report generation failed", "error", err)
		os.Exit(1)
	}

	router := buildRouter(cfg, logger, svc)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Report server listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down report server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func buildRouter(cfg *config.Config, logger *slog.Logger, svc *services.ReportService) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(transport.InstrumentDuration)
	if cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	healthHandler := transport.NewHealthHandler(version)
	reportHandler := transport.NewReportHandler(svc, logger)

	r.Get("/api/health", healthHandler.HealthCheck)
	r.Handle("/metrics", transport.MetricsHandler())
	r.Route("/api/v1", reportHandler.RegisterRoutes)

	return r
}
