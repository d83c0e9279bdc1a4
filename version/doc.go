// Package version reports the lambdachain build version. It is stamped on
// the OpenTelemetry tracer and meter as the instrumentation version.
package version
