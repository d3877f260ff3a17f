package logging

import (
	"context"
	"testing"

	"github.com/rgehrsitz/fmgo/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		level, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.expected, level)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNew(t *testing.T) {
	logger, err := New(Options{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(Options{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = New(Options{Level: "nope"})
	assert.Error(t, err)
}

func TestSugaredLoggerSatisfiesEngineLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var l calculation.Logger = zap.New(core).Sugar()

	l.Infof("months=%d", 357)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "months=357", logs.All()[0].Message)
}

func TestWithTrace(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	// no active span: the logger is returned untouched
	assert.Same(t, base, WithTrace(context.Background(), base))

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	WithTrace(ctx, base).Info("traced")

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", fields["trace_id"])
	assert.Equal(t, "0102030405060708", fields["span_id"])
}
