package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lambdachain/logger"
	"github.com/kbukum/lambdachain/version"
)

// DefaultInstrumentationName names the tracer and meter when none is configured.
const DefaultInstrumentationName = "github.com/kbukum/lambdachain"

// TracerConfig configures an SDK tracer provider.
type TracerConfig struct {
	// ServiceName is the name of the host application.
	ServiceName string
	// SampleRate is the sampling rate (0.0 to 1.0).
	SampleRate float64
}

// NewTracerProvider builds an SDK tracer provider that hands finished spans
// to exporter synchronously. The caller owns the provider and must shut it
// down. It is not installed globally; pass its Tracer to the chain runtime
// or call otel.SetTracerProvider.
func NewTracerProvider(cfg TracerConfig, exporter sdktrace.SpanExporter) *sdktrace.TracerProvider {
	var sampler sdktrace.Sampler
	switch {
	case cfg.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case cfg.SampleRate <= 0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(newResource(cfg.ServiceName)),
		sdktrace.WithSampler(sampler),
	)

	logger.Get("observability").Debug("tracer provider created", logger.Fields(
		"service", cfg.ServiceName,
		"sample_rate", cfg.SampleRate,
	))

	return tp
}

// newResource describes the host application without a schema URL, so it
// merges cleanly with whatever resource the host already uses.
func newResource(serviceName string) *resource.Resource {
	if serviceName == "" {
		serviceName = "lambdachain"
	}
	return resource.NewSchemaless(attribute.String(AttrServiceName, serviceName))
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	if name == "" {
		name = DefaultInstrumentationName
	}
	return otel.Tracer(name, trace.WithInstrumentationVersion(version.Get().Version))
}

// StartSpan starts a new span on tracer, or on the default global tracer
// when tracer is nil.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if tracer == nil {
		tracer = Tracer(DefaultInstrumentationName)
	}
	return tracer.Start(ctx, name, opts...)
}

// SpanFromContext returns the span from context.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetSpanAttribute sets an attribute on the current span in context.
func SetSpanAttribute(ctx context.Context, key string, value any) {
	span := SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	switch v := value.(type) {
	case string:
		span.SetAttributes(attribute.String(key, v))
	case int:
		span.SetAttributes(attribute.Int(key, v))
	case int64:
		span.SetAttributes(attribute.Int64(key, v))
	case float64:
		span.SetAttributes(attribute.Float64(key, v))
	case bool:
		span.SetAttributes(attribute.Bool(key, v))
	case []string:
		span.SetAttributes(attribute.StringSlice(key, v))
	}
}

// SetSpanError records an error on the current span in context and marks
// the span as failed.
func SetSpanError(ctx context.Context, err error) {
	span := SpanFromContext(ctx)
	if err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Span names.
const (
	SpanForce = "lambdachain.force"
)

// Attribute keys.
const (
	AttrServiceName = "service.name"
	AttrRunID       = "run_id"
	AttrOperation   = "operation"
	AttrStages      = "stages"
	AttrElements    = "elements"
	AttrCollector   = "collector"
	AttrStatus      = "status"
	AttrErrorCode   = "error.code"
	AttrDurationMs  = "duration_ms"
)
