// Package telemetry exports OpenTelemetry spans to Langfuse's OTLP endpoint.
package telemetry

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/blaisecz/bedtime-advisor/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ServiceVersion is reported as service.version on every span.
var ServiceVersion = "dev"

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

// ExporterOptions maps Langfuse credentials onto OTLP/HTTP exporter options. ok is false when
// Langfuse is not configured.
func ExporterOptions(cfg *config.Config) (opts []otlptracehttp.Option, ok bool) {
	if cfg.LangfuseBaseURL == "" || cfg.LangfusePublicKey == "" || cfg.LangfuseSecretKey == "" {
		return nil, false
	}
	auth := base64.StdEncoding.EncodeToString([]byte(cfg.LangfusePublicKey + ":" + cfg.LangfuseSecretKey))
	endpoint := strings.TrimSuffix(cfg.LangfuseBaseURL, "/") + "/api/public/otel/v1/traces"
	return []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(endpoint),
		otlptracehttp.WithHeaders(map[string]string{"Authorization": "Basic " + auth}),
	}, true
}

// Resource describes this process to the trace backend.
func Resource(ctx context.Context, cfg *config.Config, serviceName string) (*resource.Resource, error) {
	return resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", ServiceVersion),
		attribute.String("langfuse.environment", cfg.LangfuseEnv),
		attribute.String("bedtime.model_backend", cfg.ModelBackend),
	))
}

// InitTracer installs a batching tracer provider as the global provider. Without Langfuse
// credentials the global no-op provider is left in place.
func InitTracer(ctx context.Context, cfg *config.Config, serviceName string) (ShutdownFunc, error) {
	opts, ok := ExporterOptions(cfg)
	if !ok {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	res, err := Resource(ctx, cfg, serviceName)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
