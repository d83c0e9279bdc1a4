// Package observability provides OpenTelemetry tracing and metrics for
// forced chains.
//
// Every force runs inside a Run: a "lambdachain.force" span carrying the
// run id, operation, stage count and element count, plus counters and a
// duration histogram. Global providers are no-ops unless the host installs
// SDK providers:
//
//	tp := observability.NewTracerProvider(observability.TracerConfig{ServiceName: "svc", SampleRate: 1}, exporter)
//	defer tp.Shutdown(ctx)
//
//	mp := observability.NewMeterProvider("svc", reader)
//	metrics, err := observability.NewMetrics(mp.Meter(observability.DefaultInstrumentationName))
//
//	run := observability.NewRun(id, "force", 3, tp.Tracer("svc"), metrics)
//	ctx, span := run.Start(ctx)
//	run.End(ctx, span, n, "", nil)
package observability
