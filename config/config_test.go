package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/lambdachain/errors"
)

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Chain.DefaultCollector != "list" {
		t.Errorf("expected default collector 'list', got %q", cfg.Chain.DefaultCollector)
	}
	if cfg.Observability.InstrumentationName != DefaultInstrumentationName {
		t.Errorf("expected instrumentation name %q, got %q", DefaultInstrumentationName, cfg.Observability.InstrumentationName)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %q", cfg.Logging.Level)
	}

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := Config{Chain: ChainConfig{DefaultCollector: "set"}}
		cfg.ApplyDefaults()
		if cfg.Chain.DefaultCollector != "set" {
			t.Errorf("expected 'set', got %q", cfg.Chain.DefaultCollector)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"dict collector", func(c *Config) { c.Chain.DefaultCollector = "dict" }, ""},
		{"invalid collector", func(c *Config) { c.Chain.DefaultCollector = "tuple" }, "chain.default_collector: must be one of"},
		{"invalid level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level: must be one of"},
		{"tracing without name", func(c *Config) {
			c.Observability.Tracing = true
			c.Observability.InstrumentationName = ""
		}, "observability.instrumentation_name: is required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIG, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestLoadWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "lambdachain.yml")

	yamlContent := `
logging:
  level: debug
  format: json
chain:
  default_collector: set
  log_force: true
observability:
  tracing: true
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := New(WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "missing.env")))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := &Config{
		Chain: ChainConfig{DefaultCollector: "set", LogForce: true},
		Observability: ObservabilityConfig{
			Tracing:             true,
			InstrumentationName: DefaultInstrumentationName,
		},
	}
	want.Logging.Level = "debug"
	want.Logging.Format = "json"
	want.Logging.Output = "stdout"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidCollector(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "lambdachain.yml")
	if err := os.WriteFile(configPath, []byte("chain:\n  default_collector: bag\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := New(WithConfigFile(configPath), WithFileSystem(&mockFS{files: map[string]bool{configPath: true}}))
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LAMBDACHAIN_CHAIN_DEFAULT_COLLECTOR", "dict")
	t.Setenv("LAMBDACHAIN_LOGGING_LEVEL", "warn")
	t.Setenv("OTHER_CHAIN_DEFAULT_COLLECTOR", "set")

	cfg, err := New(WithFileSystem(&mockFS{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cfg.Chain.DefaultCollector != "dict" {
		t.Errorf("expected collector from env 'dict', got %q", cfg.Chain.DefaultCollector)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level from env 'warn', got %q", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg Config
	// With no config file found, Load should still succeed with an empty config.
	err := Load("nonexistent", &cfg, WithConfigFile("/nonexistent/path.yml"), WithFileSystem(&mockFS{}))
	if err != nil {
		t.Fatalf("expected Load to succeed with missing file, got %v", err)
	}
	if cfg.Chain.DefaultCollector != "" {
		t.Errorf("expected empty collector, got %q", cfg.Chain.DefaultCollector)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]bool
		wantConf string
		wantEnv  string
	}{
		{"named config", map[string]bool{"./lambdachain.yml": true}, "./lambdachain.yml", ""},
		{"config dir", map[string]bool{"./config/lambdachain.yaml": true, "./config/config.yml": true}, "./config/lambdachain.yaml", ""},
		{"generic fallback", map[string]bool{"./config.yml": true}, "./config.yml", ""},
		{"named env first", map[string]bool{"./.env.lambdachain": true, "./.env": true}, "", "./.env.lambdachain"},
		{"nothing", map[string]bool{}, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &Resolver{FileSystem: &mockFS{files: tc.files}}
			files := resolver.ResolveFiles(DefaultName, LoaderConfig{})
			if files.ConfigFile != tc.wantConf {
				t.Errorf("config file: expected %q, got %q", tc.wantConf, files.ConfigFile)
			}
			if files.EnvFile != tc.wantEnv {
				t.Errorf("env file: expected %q, got %q", tc.wantEnv, files.EnvFile)
			}
		})
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("CHAIN_LOG_FORCE")
	want := []string{"chain_log_force", "chain.log.force", "chain.log_force", "chain_log.force"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"chain"}, generateEnvKeyVariants("CHAIN")); diff != "" {
		t.Errorf("single part mismatch (-want +got):\n%s", diff)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/lambdachain.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)

	if lc.FileSystem != fs {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/lambdachain.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}
