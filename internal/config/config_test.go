package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadConfigFromYAML resolves yaml through viper the same way the CLI does.
func loadConfigFromYAML(t *testing.T, content string) Config {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, []string{"Aluno", "Professor"}, cfg.Roles)
	assert.True(t, cfg.UI.ShowCounter)
	assert.Equal(t, 3, cfg.UI.ToastSeconds)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "file", cfg.Tracing.Exporter)
	assert.Empty(t, cfg.Metrics.Addr)
	require.NoError(t, Validate(cfg))
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	cfg := loadConfigFromYAML(t, DefaultConfigTemplate())

	want := Defaults()
	assert.Equal(t, want.Roles, cfg.Roles)
	assert.Equal(t, want.UI, cfg.UI)
	assert.Equal(t, want.Tracing, cfg.Tracing)
	assert.Equal(t, want.Theme, cfg.Theme)
	require.NoError(t, Validate(cfg))
}

func TestLoad_Overrides(t *testing.T) {
	cfg := loadConfigFromYAML(t, `
roles: [Aluno, Professor, Coordenador]
seed_file: people.yaml
ui:
  show_counter: false
theme:
  error: "#FF0000"
metrics:
  addr: 127.0.0.1:9464
`)

	assert.Equal(t, []string{"Aluno", "Professor", "Coordenador"}, cfg.Roles)
	assert.Equal(t, "people.yaml", cfg.SeedFile)
	assert.False(t, cfg.UI.ShowCounter)
	assert.Equal(t, 3, cfg.UI.ToastSeconds, "unset keys fall back to defaults")
	assert.Equal(t, "#FF0000", cfg.Theme.Error)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty role", func(c *Config) { c.Roles = []string{"Aluno", " "} }, "roles[1]: must not be empty"},
		{"reserved role", func(c *Config) { c.Roles = []string{"Todos"} }, "reserved"},
		{"duplicate role", func(c *Config) { c.Roles = []string{"Aluno", "Aluno"} }, "duplicate role"},
		{"negative toast", func(c *Config) { c.UI.ToastSeconds = -1 }, "ui.toast_seconds"},
		{"bad exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, "tracing.exporter"},
		{"bad sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }, "tracing.sample_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Roles = []string{""}
	cfg.Tracing.Exporter = "zipkin"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roles[0]")
	assert.Contains(t, err.Error(), "tracing.exporter")
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles: [Monitor]\nui:\n  toast_seconds: 5\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Monitor"}, cfg.Roles)
	assert.Equal(t, 5, cfg.UI.ToastSeconds)
	assert.True(t, cfg.UI.ShowCounter)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles: [Todos]\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
