package chain

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lambdachain/config"
	"github.com/kbukum/lambdachain/logger"
	"github.com/kbukum/lambdachain/observability"
)

const component = "lambdachain"

// Runtime carries the settings shared by every chain it creates: the
// logger, tracer, metrics, and default collector.
type Runtime struct {
	log       *logger.Logger
	tracer    trace.Tracer
	metrics   *observability.Metrics
	collector Collector
	logForce  bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for force logs.
func WithLogger(l *logger.Logger) Option {
	return func(rt *Runtime) { rt.log = l.WithComponent(component) }
}

// WithTracer enables force spans on t.
func WithTracer(t trace.Tracer) Option {
	return func(rt *Runtime) { rt.tracer = t }
}

// WithMetrics enables force metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(rt *Runtime) { rt.metrics = m }
}

// WithCollector replaces the default collector.
func WithCollector(c Collector) Option {
	return func(rt *Runtime) { rt.collector = c }
}

var defaultRuntime = &Runtime{collector: List}

// DefaultRuntime returns the runtime used by the package-level From.
func DefaultRuntime() *Runtime { return defaultRuntime }

// NewRuntime builds a runtime from cfg, or from the defaults when cfg is
// nil. Tracing and metrics use the global OpenTelemetry providers under
// the configured instrumentation name; options override any setting.
func NewRuntime(cfg *config.Config, opts ...Option) (*Runtime, error) {
	c := config.Default()
	if cfg != nil {
		cp := *cfg
		cp.ApplyDefaults()
		c = &cp
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	collector, err := CollectorByName(c.Chain.DefaultCollector)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{
		log:       logger.New(&c.Logging, component).WithComponent(component),
		collector: collector,
		logForce:  c.Chain.LogForce,
	}

	name := c.Observability.InstrumentationName
	if c.Observability.Tracing {
		rt.tracer = observability.Tracer(name)
	}
	if c.Observability.Metrics {
		m, err := observability.NewMetrics(observability.Meter(name))
		if err != nil {
			return nil, err
		}
		rt.metrics = m
	}

	for _, opt := range opts {
		opt(rt)
	}
	return rt, nil
}

// From creates a chain over src bound to the runtime.
func (rt *Runtime) From(src any) *Chain {
	return &Chain{src: src, rt: rt}
}

// logger resolves lazily so the default runtime follows the global logger.
func (rt *Runtime) logger() *logger.Logger {
	if rt.log != nil {
		return rt.log
	}
	return logger.Get(component)
}
