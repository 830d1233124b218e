package idmap

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tableflip.dev/granular/pkg/entity"
)

const snapshotFile = ".idmap.yaml"

// SnapshotPath returns the map's location inside a data directory.
func SnapshotPath(basePath string) string {
	return filepath.Join(basePath, snapshotFile)
}

// Load reads the persisted map, returning a fresh one when none exists.
func Load(basePath string) (*Map, error) {
	data, err := os.ReadFile(SnapshotPath(basePath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, err
	}
	raw := make(map[entity.Type]*Table)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	m := New()
	for t, table := range raw {
		if _, known := m.tables[t]; !known || table == nil {
			continue
		}
		if table.RealToSynthetic == nil {
			table.RealToSynthetic = make(map[string]int)
		}
		if table.SyntheticToReal == nil {
			table.SyntheticToReal = make(map[int]string)
		}
		m.tables[t] = table
	}
	return m, nil
}

// Flush writes the map back if it changed. Written atomically via a
// temp-file rename like the store's index files.
func (m *Map) Flush(basePath string) error {
	if !m.dirty {
		return nil
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(m.tables)
	if err != nil {
		return err
	}
	path := SnapshotPath(basePath)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	m.dirty = false
	return nil
}
