package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Status values recorded on spans and metrics.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Run holds observability context for one forced chain.
type Run struct {
	ID        string
	Operation string
	Stages    int
	StartTime time.Time
	Tracer    trace.Tracer
	Metrics   *Metrics
}

// NewRun creates a run. A nil tracer disables spans; nil metrics disable
// metric recording.
func NewRun(id, operation string, stages int, tracer trace.Tracer, metrics *Metrics) *Run {
	return &Run{
		ID:        id,
		Operation: operation,
		Stages:    stages,
		StartTime: time.Now(),
		Tracer:    tracer,
		Metrics:   metrics,
	}
}

// runKey is the context key for Run.
type runKey struct{}

// WithRun stores a Run in the context.
func WithRun(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// RunFromContext retrieves the Run from context, or nil.
func RunFromContext(ctx context.Context) *Run {
	if r, ok := ctx.Value(runKey{}).(*Run); ok {
		return r
	}
	return nil
}

var disabledTracer = noop.NewTracerProvider().Tracer("")

// Start opens the force span and stores the run in the returned context.
func (r *Run) Start(ctx context.Context) (context.Context, trace.Span) {
	tracer := r.Tracer
	if tracer == nil {
		tracer = disabledTracer
	}
	ctx, span := tracer.Start(ctx, SpanForce, trace.WithAttributes(
		attribute.String(AttrRunID, r.ID),
		attribute.String(AttrOperation, r.Operation),
		attribute.Int(AttrStages, r.Stages),
	))
	return WithRun(ctx, r), span
}

// End records the outcome on span and metrics, then ends span. code is the
// error code of err, or empty.
func (r *Run) End(ctx context.Context, span trace.Span, elements int64, code string, err error) {
	duration := r.Duration()
	status := StatusOK
	if err != nil {
		status = StatusError
		SetSpanError(trace.ContextWithSpan(ctx, span), err)
		if code != "" {
			span.SetAttributes(attribute.String(AttrErrorCode, code))
		}
	}

	span.SetAttributes(
		attribute.Int64(AttrElements, elements),
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if r.Metrics == nil {
		return
	}
	r.Metrics.RecordElements(ctx, r.Operation, elements)
	r.Metrics.RecordForce(ctx, r.Operation, status, duration)
	if err != nil {
		r.Metrics.RecordError(ctx, r.Operation, code)
	}
}

// Duration returns the elapsed time since the run started.
func (r *Run) Duration() time.Duration {
	return time.Since(r.StartTime)
}
