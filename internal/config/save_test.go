package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRoles_CreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SaveRoles(path, []string{"Aluno", "Monitor"}))

	cfg := loadConfigFromYAML(t, mustRead(t, path))
	assert.Equal(t, []string{"Aluno", "Monitor"}, cfg.Roles)
}

func TestSaveRoles_PreservesOtherSettingsAndComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# my roster
roles:
  - Aluno
ui:
  show_counter: false # keep quiet
metrics:
  addr: 127.0.0.1:9464
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o600))

	require.NoError(t, SaveRoles(path, []string{"Aluno", "Professor", "Monitor"}))

	content := mustRead(t, path)
	assert.Contains(t, content, "# my roster")
	assert.Contains(t, content, "# keep quiet")

	cfg := loadConfigFromYAML(t, content)
	assert.Equal(t, []string{"Aluno", "Professor", "Monitor"}, cfg.Roles)
	assert.False(t, cfg.UI.ShowCounter)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
}

func TestSaveRoles_AppendsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  toast_seconds: 5\n"), 0o600))

	require.NoError(t, SaveRoles(path, []string{"Monitor"}))

	cfg := loadConfigFromYAML(t, mustRead(t, path))
	assert.Equal(t, []string{"Monitor"}, cfg.Roles)
	assert.Equal(t, 5, cfg.UI.ToastSeconds)
}

func TestSaveRoles_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles: [oops"), 0o600))

	require.Error(t, SaveRoles(path, []string{"Aluno"}))
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
