package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/codemod/pkg/observability"
)

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	return record
}

func TestTracingHandlerInjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(observability.NewTracingHandler(inner, "codemod", "1.0.0", "ci"))

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	logger.InfoContext(trace.ContextWithSpanContext(context.Background(), sc), "unit changed")

	record := decodeRecord(t, &buf)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", record["trace_id"])
	assert.Equal(t, "0102030405060708", record["span_id"])
	assert.Equal(t, "codemod", record["service"])
	assert.Equal(t, "1.0.0", record["version"])
	assert.Equal(t, "ci", record["env"])
}

func TestTracingHandlerWithoutSpan(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(observability.NewTracingHandler(inner, "codemod", "", ""))

	logger.InfoContext(context.Background(), "no span")

	record := decodeRecord(t, &buf)
	assert.NotContains(t, record, "trace_id")
	assert.NotContains(t, record, "version")
	assert.NotContains(t, record, "env")
	assert.Equal(t, "codemod", record["service"])
}

func TestTracingHandlerGroupsAndAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, nil)
	logger := slog.New(observability.NewTracingHandler(inner, "codemod", "", ""))

	logger.With(slog.String("recipe", "spring.ConstructorInjection")).
		WithGroup("unit").
		InfoContext(context.Background(), "pass finished", slog.String("source", "Foo.java"))

	record := decodeRecord(t, &buf)
	assert.Equal(t, "codemod", record["service"])
	assert.Equal(t, "spring.ConstructorInjection", record["recipe"])

	unit, ok := record["unit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Foo.java", unit["source"])
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.LogLevel = slog.LevelWarn

	logger := observability.NewLogger(&buf, cfg)
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")

	record := decodeRecord(t, &buf)
	assert.Equal(t, "shown", record["msg"])
	assert.Equal(t, "codemod", record["service"])
}

func TestNewLoggerText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := observability.NewLogger(&buf, observability.DefaultConfig())
	logger.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "service=codemod")
}
