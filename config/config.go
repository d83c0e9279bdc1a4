package config

import (
	"github.com/kbukum/lambdachain/logger"
	"github.com/kbukum/lambdachain/validation"
)

// DefaultName is the application name used to locate config and env files
// and to prefix environment variables (LAMBDACHAIN_CHAIN_DEFAULT_COLLECTOR).
const DefaultName = "lambdachain"

// DefaultInstrumentationName names the tracer and meter when none is configured.
const DefaultInstrumentationName = "github.com/kbukum/lambdachain"

// Config is the complete lambdachain configuration.
type Config struct {
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Chain         ChainConfig         `yaml:"chain" mapstructure:"chain"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// ChainConfig controls chain evaluation.
type ChainConfig struct {
	// DefaultCollector is used by Force when no collector is given.
	DefaultCollector string `yaml:"default_collector" mapstructure:"default_collector" validate:"omitempty,oneof=list set dict"`
	// LogForce raises force start and finish logs from debug to info.
	LogForce bool `yaml:"log_force" mapstructure:"log_force"`
}

// ObservabilityConfig toggles OpenTelemetry instrumentation of forced chains.
type ObservabilityConfig struct {
	Tracing             bool   `yaml:"tracing" mapstructure:"tracing"`
	Metrics             bool   `yaml:"metrics" mapstructure:"metrics"`
	InstrumentationName string `yaml:"instrumentation_name" mapstructure:"instrumentation_name"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults applies default values to every section.
func (c *Config) ApplyDefaults() {
	c.Logging.ApplyDefaults()
	if c.Chain.DefaultCollector == "" {
		c.Chain.DefaultCollector = "list"
	}
	if c.Observability.InstrumentationName == "" {
		c.Observability.InstrumentationName = DefaultInstrumentationName
	}
}

// Validate checks the struct tags of every section.
func (c *Config) Validate() error {
	v := validation.New().Check("config", validation.Validate(c))
	if c.Observability.Tracing || c.Observability.Metrics {
		v.Required("observability.instrumentation_name", c.Observability.InstrumentationName)
	}
	return v.Validate()
}
