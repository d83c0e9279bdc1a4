// Package validation validates lambdachain configuration.
//
// It supports struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as a
// single INVALID_CONFIG error whose "fields" detail lists every problem.
//
// # Struct Tag Validation
//
//	type ChainConfig struct {
//	    DefaultCollector string `mapstructure:"default_collector" validate:"oneof=list set dict"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(cfg.Name != "", "observability.instrumentation_name", "is required")
//	err := v.Validate()
package validation
