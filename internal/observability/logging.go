package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogging tees logger into an OTLP log exporter. Without an endpoint the
// logger is returned unchanged.
func InitLogging(ctx context.Context, cfg Config, logger *zap.Logger) (*zap.Logger, func(context.Context) error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Endpoint == "" {
		return logger, noopShutdown, nil
	}

	exporter, err := otlploghttp.New(ctx, otlploghttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(
			sdklog.NewBatchProcessor(exporter),
		),
	)

	otelCore := otelzap.NewCore(cfg.serviceName(), otelzap.WithLoggerProvider(provider))

	return zap.New(zapcore.NewTee(logger.Core(), otelCore)), provider.Shutdown, nil
}

// Setup initialises tracing, metrics and log export in that order and returns
// the combined shutdown. On error everything already started is shut down.
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*zap.Logger, func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var firstErr error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			if err := shutdowns[i](ctx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	traceShutdown, err := InitTracing(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	shutdowns = append(shutdowns, traceShutdown)

	metricShutdown, err := InitMetrics(ctx, cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, nil, err
	}
	shutdowns = append(shutdowns, metricShutdown)

	teed, logShutdown, err := InitLogging(ctx, cfg, logger)
	if err != nil {
		_ = shutdown(ctx)
		return nil, nil, err
	}
	shutdowns = append(shutdowns, logShutdown)

	return teed, shutdown, nil
}
