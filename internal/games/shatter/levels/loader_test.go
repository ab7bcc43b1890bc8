package levels

import (
	"path/filepath"
	"testing"
)

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader("testdata")

	specs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// broken.yaml has no id and notes.txt is not YAML; both are skipped
	if len(specs) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(specs))
	}

	// Sorted by level ID, not by file name
	if specs[0].ID != "alpha" || specs[1].ID != "omega" {
		t.Errorf("levels should sort by ID, got %q, %q", specs[0].ID, specs[1].ID)
	}

	if specs[0].Name != "Alpha Wave" {
		t.Errorf("expected Name 'Alpha Wave', got %q", specs[0].Name)
	}
	if specs[1].Name != "omega" {
		t.Errorf("name should fall back to the ID, got %q", specs[1].Name)
	}
	if specs[0].Metadata["difficulty"] != "warmup" {
		t.Errorf("metadata should survive loading, got %v", specs[0].Metadata)
	}
}

func TestLoaderLoadFile(t *testing.T) {
	loader := NewLoader("testdata")

	spec, err := loader.LoadFile(filepath.Join("testdata", "wave.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if spec.ID != "alpha" {
		t.Errorf("expected ID 'alpha', got %q", spec.ID)
	}
	if len(spec.Rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(spec.Rows))
	}
	if spec.FilePath == "" {
		t.Error("FilePath should record where the level came from")
	}
}

func TestLoaderLoadFileMissing(t *testing.T) {
	loader := NewLoader("testdata")

	if _, err := loader.LoadFile(filepath.Join("testdata", "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoaderListIDs(t *testing.T) {
	loader := NewLoader("testdata")

	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}

	if len(ids) != 2 {
		t.Fatalf("expected 2 IDs, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("IDs not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	loader := NewLoader(filepath.Join("testdata", "no-such-dir"))

	if _, err := loader.LoadAll(); err == nil {
		t.Error("expected error for a missing root directory")
	}
}

func TestLoaderDeterministicOrder(t *testing.T) {
	loader := NewLoader("testdata")

	first, _ := loader.LoadAll()
	second, _ := loader.LoadAll()

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("order not deterministic at %d", i)
		}
	}
}
