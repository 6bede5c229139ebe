package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "notes.yaml")

	yamlContent := `---
categories:
  - Linux
  - SQL
notes:
  - title: Welcome
    category: Linux
    tags: "getting-started, intro"
    favorite: true
    content: |
      # Welcome
      First note.
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	file, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(file.Categories) != 2 {
		t.Errorf("Load() categories = %v, want 2", file.Categories)
	}
	if len(file.Notes) != 1 {
		t.Fatalf("Load() notes = %d, want 1", len(file.Notes))
	}
	if file.Notes[0].Title != "Welcome" || !file.Notes[0].Favorite {
		t.Errorf("Load() first note = %+v", file.Notes[0])
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/notes.yaml")
	if _, err := loader.Load(); err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "notes.yaml")

	err := os.WriteFile(yamlPath, []byte("notes: [unclosed"), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	if _, err := loader.Load(); err == nil {
		t.Fatal("Load() should fail for invalid yaml")
	}
}
