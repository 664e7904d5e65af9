package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/roster/internal/log"
)

// seedFile is the mapping form of a seed file:
//
//	records:
//	  - name: Ana
//	    email: ana@x.com
//	    role: Aluno
//
// A bare top-level list of the same entries is accepted too.
type seedFile struct {
	Records []Fields `yaml:"records"`
}

// ParseSeed decodes seed YAML in either the list or the records: form.
func ParseSeed(data []byte) ([]Fields, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var entries []Fields
		if err := root.Decode(&entries); err != nil {
			return nil, fmt.Errorf("parsing seed: %w", err)
		}
		return entries, nil
	case yaml.MappingNode:
		var sf seedFile
		if err := root.Decode(&sf); err != nil {
			return nil, fmt.Errorf("parsing seed: %w", err)
		}
		return sf.Records, nil
	default:
		return nil, fmt.Errorf("parsing seed: expected a list or a records: mapping, line %d", root.Line)
	}
}

// LoadSeed reads and decodes a seed file.
func LoadSeed(path string) ([]Fields, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the --seed flag
	if err != nil {
		return nil, fmt.Errorf("reading seed: %w", err)
	}
	return ParseSeed(data)
}

// Import submits entries through normal validation. Rejected entries are
// logged and skipped; the number accepted is returned.
func (m *Manager) Import(entries []Fields) int {
	added := 0
	for i, f := range entries {
		if _, err := m.Submit(f); err != nil {
			log.ErrorErr(log.CatSeed, "Skipping seed entry", err, "index", i, "email", f.Email)
			continue
		}
		added++
	}
	log.Info(log.CatSeed, "Seed imported", "added", added, "skipped", len(entries)-added)
	return added
}
