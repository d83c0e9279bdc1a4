// Package config loads and validates lambdachain configuration.
//
// It uses Viper to read an optional lambdachain.yml (or .yaml, .json,
// .toml), godotenv to load an optional .env file, and overlays environment
// variables carrying the LAMBDACHAIN_ prefix.
//
// # Usage
//
//	cfg, err := config.New()
//	rt := chain.NewRuntime(cfg)
//
// Environment variables use underscore-separated paths:
//
//	LAMBDACHAIN_LOGGING_LEVEL=debug
//	LAMBDACHAIN_CHAIN_DEFAULT_COLLECTOR=set
//	LAMBDACHAIN_OBSERVABILITY_TRACING=true
package config
