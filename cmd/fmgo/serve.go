package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/fmgo/internal/config"
	"github.com/rgehrsitz/fmgo/internal/domain"
	"github.com/rgehrsitz/fmgo/internal/logging"
	"github.com/rgehrsitz/fmgo/internal/observability"
	"github.com/rgehrsitz/fmgo/internal/server"
)

const shutdownTimeout = 5 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		Long: `Serve projections, rate sweeps and plan comparisons over HTTP.

Traces, metrics and logs are exported over OTLP when
OTEL_EXPORTER_OTLP_ENDPOINT is set. Prometheus metrics are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default: FMGO_ADDR or :8080)")
	cmd.Flags().Bool("dev", false, "Human readable console logs instead of JSON")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	addr := settings.Addr
	if flag, _ := cmd.Flags().GetString("addr"); flag != "" {
		addr = flag
	}

	level := settings.LogLevel
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	dev, _ := cmd.Flags().GetBool("dev")
	logger, err := logging.New(logging.Options{Level: level, Development: dev})
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, shutdownTelemetry, err := observability.Setup(ctx, observability.Config{
		Endpoint:    settings.OTLPEndpoint,
		ServiceName: settings.ServiceName,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialise telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	engineConfig := settings.EngineConfig()
	if flag, _ := cmd.Flags().GetString("locale"); flag != "" {
		if engineConfig.Locale, err = domain.ParseLocale(flag); err != nil {
			return err
		}
	}

	s, err := server.New(server.Options{Engine: engineConfig, Logger: logger})
	if err != nil {
		return err
	}
	srv := s.NewHTTPServer(addr)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
