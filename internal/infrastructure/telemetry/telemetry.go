// Package telemetry configures the OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const serviceVersion = "0.1.0"

// Config selects the span exporter. Endpoint wins over Stdout; with neither
// set tracing is disabled.
type Config struct {
	ServiceName string
	Endpoint    string
	Stdout      bool
	Writer      io.Writer
}

// Enabled reports whether any exporter is configured.
func (c Config) Enabled() bool {
	return c.Endpoint != "" || c.Stdout
}

// NewProvider installs a tracer provider as the global default and returns
// its shutdown func. When tracing is disabled the returned func is a no-op.
func NewProvider(ctx context.Context, cfg Config, log zerolog.Logger) (func(context.Context) error, error) {
	if !cfg.Enabled() {
		log.Debug().Msg("tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	exp, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(newResource(cfg.ServiceName)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	log.Info().Str("endpoint", cfg.Endpoint).Bool("stdout", cfg.Endpoint == "").Msg("tracing enabled")
	return tp.Shutdown, nil
}

// Wrap instruments h with otelhttp spans named after the service.
func Wrap(h http.Handler, serviceName string) http.Handler {
	return otelhttp.NewHandler(h, serviceName)
}

func newExporter(ctx context.Context, cfg Config) (trace.SpanExporter, error) {
	if cfg.Endpoint != "" {
		endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return otlptracehttp.New(ctx,
			otlptracehttp.WithInsecure(),
			otlptracehttp.WithEndpoint(endpoint),
		)
	}

	opts := []stdouttrace.Option{stdouttrace.WithoutTimestamps()}
	if cfg.Writer != nil {
		opts = append(opts, stdouttrace.WithWriter(cfg.Writer))
	}
	return stdouttrace.New(opts...)
}

func newResource(serviceName string) *resource.Resource {
	if serviceName == "" {
		serviceName = "taskhub"
	}
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
	)
}
