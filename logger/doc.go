// Package logger provides structured logging for lambdachain using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. Loggers pick up the
// active OpenTelemetry span from a context via WithContext.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("lambdachain")
//	log.Debug("force finished", logger.Fields(logger.FieldElements, 12))
package logger
