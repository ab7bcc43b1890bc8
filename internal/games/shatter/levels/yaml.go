package levels

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
//
// Rows use the layout codes: '.' empty, '#' standard, '2' reinforced,
// '3' heavy, 'X' indestructible, 'P' power drop, 'D' detonator,
// 'C' cycling bonus, 'R' relocating, 'U' duplicator, 'K' catalyst,
// '?' random.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Spec, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Spec{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Spec{}, fmt.Errorf("level has no id")
	}
	if len(yl.Rows) == 0 {
		return Spec{}, fmt.Errorf("level %s has no rows", yl.ID)
	}

	width := len(yl.Rows[0])
	for i, row := range yl.Rows {
		if len(row) != width {
			return Spec{}, fmt.Errorf("level %s row %d width %d, want %d", yl.ID, i, len(row), width)
		}
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Spec{
		ID:       yl.ID,
		Name:     name,
		Rows:     yl.Rows,
		Metadata: yl.Metadata,
	}, nil
}
