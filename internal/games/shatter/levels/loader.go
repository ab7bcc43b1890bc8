// Package levels loads custom Shatter level packs from disk. The package
// exposes plain row data; the game converts rows into live layouts, so
// levels never imports game state.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Spec is a loaded level definition: ASCII rows plus identity.
type Spec struct {
	ID       string
	Name     string
	Rows     []string
	Metadata map[string]string
	FilePath string
}

// Loader handles loading level packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Spec, error) {
	var specs []Spec

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		spec, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		specs = append(specs, spec)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].ID < specs[j].ID
	})

	return specs, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	spec, err := ParseYAML(data)
	if err != nil {
		return Spec{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	spec.FilePath = path
	return spec, nil
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	specs, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(specs))
	for i, spec := range specs {
		ids[i] = spec.ID
	}
	return ids, nil
}
