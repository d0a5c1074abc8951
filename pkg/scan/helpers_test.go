package scan

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/depchecker/pkg/dotted"
)

// writeFile creates dir/name with content, creating parent folders.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// scanSource writes content to a fresh file and returns the names s finds.
func scanSource(t *testing.T, s Scanner, filename, content string) []string {
	t.Helper()
	dir := t.TempDir()
	path := writeFile(t, dir, filename, content)

	names, err := s.Scan(context.Background(), NewUnit(dir, path))
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	return nameStrings(slices.Collect(names))
}

func nameStrings(ns []dotted.Name) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.String()
	}
	return out
}

// minimalStructure lays out an installed distribution without sources:
// setup.py, an egg-info folder and an empty src folder.
func minimalStructure(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "my.package")
	writeFile(t, root, "setup.py", "from setuptools import setup\nsetup()\n")
	egg := filepath.Join(root, "my.package.egg-info")
	writeFile(t, egg, "PKG-INFO", "Metadata-Version: 2.1\nName: my.package\nVersion: 1.0\n")
	writeFile(t, egg, "requires.txt", "one\n")
	writeFile(t, egg, "top_level.txt", "src\n")
	if err := os.MkdirAll(filepath.Join(root, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	return root
}

func discoverCount(t *testing.T, s Scanner, top string) int {
	t.Helper()
	units, err := s.Discover(top)
	if err != nil {
		t.Fatalf("Discover(%s) error: %v", top, err)
	}
	return len(units)
}
