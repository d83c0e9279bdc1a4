package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/lambdachain/version"
)

// NewMeterProvider builds an SDK meter provider collecting through reader.
// The caller owns the provider and must shut it down.
func NewMeterProvider(serviceName string, reader sdkmetric.Reader) *sdkmetric.MeterProvider {
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(newResource(serviceName)),
	)
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	if name == "" {
		name = DefaultInstrumentationName
	}
	return otel.Meter(name, metric.WithInstrumentationVersion(version.Get().Version))
}

// Metric instrument names.
const (
	MetricElements      = "lambdachain.elements"
	MetricForceTotal    = "lambdachain.force.total"
	MetricForceDuration = "lambdachain.force.duration"
	MetricErrors        = "lambdachain.errors"
)

// Metrics holds the instruments recorded for forced chains.
type Metrics struct {
	elements      metric.Int64Counter
	forceTotal    metric.Int64Counter
	forceDuration metric.Float64Histogram
	errorTotal    metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	elements, err := meter.Int64Counter(MetricElements,
		metric.WithDescription("Elements produced by forced chains"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElements, err)
	}

	forceTotal, err := meter.Int64Counter(MetricForceTotal,
		metric.WithDescription("Total number of forced chains"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricForceTotal, err)
	}

	forceDuration, err := meter.Float64Histogram(MetricForceDuration,
		metric.WithDescription("Duration of forced chains in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricForceDuration, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrors,
		metric.WithDescription("Failed forces by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrors, err)
	}

	return &Metrics{
		elements:      elements,
		forceTotal:    forceTotal,
		forceDuration: forceDuration,
		errorTotal:    errorTotal,
	}, nil
}

// RecordElements adds n produced elements.
func (m *Metrics) RecordElements(ctx context.Context, operation string, n int64) {
	m.elements.Add(ctx, n, metric.WithAttributes(attribute.String(AttrOperation, operation)))
}

// RecordForce records one completed force.
func (m *Metrics) RecordForce(ctx context.Context, operation, status string, duration time.Duration) {
	m.forceTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, operation),
		attribute.String(AttrStatus, status),
	))
	m.forceDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrOperation, operation),
	))
}

// RecordError records a failed force by error code.
func (m *Metrics) RecordError(ctx context.Context, operation, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrOperation, operation),
		attribute.String(AttrErrorCode, code),
	))
}
