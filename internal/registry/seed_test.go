package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `records:
  - name: Ana
    surname: Silva
    birth_date: "2001-02-03"
    email: ana@x.com
    role: Aluno
  - name: Bruno
    email: bruno@x.com
    phone: "555-0000"
    role: Professor
  - name: Dup
    email: ana@x.com
    role: Aluno
  - name: ""
    email: nobody@x.com
    role: Aluno
`

func TestParseSeed(t *testing.T) {
	entries, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "2001-02-03", entries[0].BirthDate)
	assert.Equal(t, "555-0000", entries[1].Phone)
}

func TestParseSeed_BareList(t *testing.T) {
	entries, err := ParseSeed([]byte("- name: Ana\n  email: ana@x.com\n  role: Aluno\n- name: Bruno\n  email: bruno@x.com\n  role: Professor\n"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ana", entries[0].Name)
	assert.Equal(t, "Professor", entries[1].Role)
}

func TestParseSeed_EmptyAndScalar(t *testing.T) {
	entries, err := ParseSeed(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = ParseSeed([]byte("just a string\n"))
	require.ErrorContains(t, err, "expected a list")
}

func TestParseSeed_Invalid(t *testing.T) {
	_, err := ParseSeed([]byte("records: [unterminated"))
	require.Error(t, err)
}

func TestLoadSeedAndImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	entries, err := LoadSeed(path)
	require.NoError(t, err)

	m := newTestManager()
	added := m.Import(entries)

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"ana@x.com", "bruno@x.com"}, emails(m.FilteredView(AllRoles)))
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
