// Package tracing installs the global OpenTelemetry tracer provider.
//
// When tracing is disabled the global provider stays the otel default
// (no-op), so instrumented code pays nothing.  When enabled, spans are
// batched and written as JSON through the stdout exporter to w.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/yanizio/jeevan/internal/config"
)

// Shutdown flushes and stops the provider.
type Shutdown func(context.Context) error

// Setup configures tracing from cfg.  The returned Shutdown is never nil.
func Setup(cfg config.Tracing, w io.Writer) (Shutdown, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
