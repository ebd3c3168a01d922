package telemetry

import (
	"context"
	"testing"

	"era-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

func TestNewTracerProvider_WithoutEndpoint(t *testing.T) {
	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, config.TracingConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(ctx) })

	assert.Same(t, tp, otel.GetTracerProvider())

	_, span := otel.Tracer("test").Start(ctx, "op")
	defer span.End()
	require.True(t, span.SpanContext().IsValid())

	ro, ok := span.(sdktrace.ReadOnlySpan)
	require.True(t, ok)
	assert.Contains(t, ro.Resource().Attributes(), semconv.ServiceNameKey.String("era-quiz"))
}

func TestNewTracerProvider_CustomServiceName(t *testing.T) {
	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, config.TracingConfig{ServiceName: "era-quiz-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(ctx) })

	_, span := tp.Tracer("test").Start(ctx, "op")
	defer span.End()

	ro, ok := span.(sdktrace.ReadOnlySpan)
	require.True(t, ok)
	assert.Contains(t, ro.Resource().Attributes(), semconv.ServiceNameKey.String("era-quiz-test"))
}

func TestNewTracerProvider_WithEndpoint(t *testing.T) {
	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, config.TracingConfig{Endpoint: "localhost:4318"})
	require.NoError(t, err)
	require.NotNil(t, tp)

	shutdownCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = tp.Shutdown(shutdownCtx)
}
