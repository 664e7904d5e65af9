// Package config provides configuration types, defaults, and persistence for roster.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/zjrosen/roster/internal/log"
	"github.com/zjrosen/roster/internal/registry"
)

// Config holds all configuration options for roster.
type Config struct {
	Roles    []string      `mapstructure:"roles"`
	SeedFile string        `mapstructure:"seed_file"`
	UI       UIConfig      `mapstructure:"ui"`
	Theme    ThemeConfig   `mapstructure:"theme"`
	Tracing  TracingConfig `mapstructure:"tracing"`
	Metrics  MetricsConfig `mapstructure:"metrics"`
}

// UIConfig holds user interface options.
type UIConfig struct {
	ShowCounter  bool `mapstructure:"show_counter"`
	ToastSeconds int  `mapstructure:"toast_seconds"` // how long success toasts stay up
}

// ThemeConfig overrides individual semantic colors. Empty values keep the
// built-in palette.
type ThemeConfig struct {
	Muted   string `mapstructure:"muted"`
	Error   string `mapstructure:"error"`
	Success string `mapstructure:"success"`
}

// TracingConfig controls OpenTelemetry span export.
type TracingConfig struct {
	// Enabled switches tracing on. Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the backend: "none", "file", "stdout", "otlp".
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the JSONL output for the file exporter.
	// Default: ~/.config/roster/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector address for the otlp exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of traces kept (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics, e.g. "127.0.0.1:9464".
	// Empty disables the endpoint.
	Addr string `mapstructure:"addr"`
}

// DefaultRoles are the roles offered by the form when none are configured.
func DefaultRoles() []string {
	return []string{"Aluno", "Professor"}
}

// DefaultTracesFilePath returns ~/.config/roster/traces/traces.jsonl, or ""
// when the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "roster", "traces", "traces.jsonl")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Roles: DefaultRoles(),
		UI: UIConfig{
			ShowCounter:  true,
			ToastSeconds: 3,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// SetDefaults registers Defaults with v so unset keys resolve.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("roles", d.Roles)
	v.SetDefault("ui.show_counter", d.UI.ShowCounter)
	v.SetDefault("ui.toast_seconds", d.UI.ToastSeconds)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// Validate checks cfg for values the app cannot run with.
func Validate(cfg Config) error {
	var errs []error

	seen := make(map[string]struct{}, len(cfg.Roles))
	for i, role := range cfg.Roles {
		trimmed := strings.TrimSpace(role)
		if trimmed == "" {
			errs = append(errs, fmt.Errorf("roles[%d]: must not be empty", i))
			continue
		}
		if trimmed == registry.AllRoles {
			errs = append(errs, fmt.Errorf("roles[%d]: %q is reserved for the all-roles filter", i, trimmed))
			continue
		}
		if _, dup := seen[trimmed]; dup {
			errs = append(errs, fmt.Errorf("roles[%d]: duplicate role %q", i, trimmed))
		}
		seen[trimmed] = struct{}{}
	}

	if cfg.UI.ToastSeconds < 0 {
		errs = append(errs, fmt.Errorf("ui.toast_seconds: must be >= 0, got %d", cfg.UI.ToastSeconds))
	}

	switch cfg.Tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("tracing.exporter: invalid value %q (must be none, file, stdout or otlp)", cfg.Tracing.Exporter))
	}
	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_rate: must be between 0 and 1, got %v", cfg.Tracing.SampleRate))
	}

	return errors.Join(errs...)
}

// Load reads the YAML file at path on top of Defaults and validates it.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// DefaultConfigTemplate is written when no config file exists.
func DefaultConfigTemplate() string {
	return `# Roster Configuration

# Roles offered by the registration form and the filter.
# "Todos" is reserved: it means "show every role".
roles:
  - Aluno
  - Professor

# Optional YAML file of records loaded at startup (same as --seed).
# seed_file: ./people.yaml

ui:
  show_counter: true   # Show "Registered: N" in the header
  toast_seconds: 3     # How long success notifications stay visible

# Color overrides (hex). Empty keeps the default palette.
theme:
  # muted: "#696969"
  # error: "#FF8787"
  # success: "#73F59F"

# OpenTelemetry tracing of registry operations.
tracing:
  enabled: false
  exporter: file        # none, file, stdout, otlp
  # file_path: ~/.config/roster/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Prometheus metrics endpoint. Leave empty to disable.
metrics:
  # addr: 127.0.0.1:9464
`
}

// WriteDefaultConfig writes DefaultConfigTemplate to configPath, creating
// parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
