package scan

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/depchecker/pkg/errors"
)

func TestPythonDiscover(t *testing.T) {
	p := NewPython(nil)

	t.Run("nothing", func(t *testing.T) {
		root := minimalStructure(t)
		if n := discoverCount(t, p, root); n != 0 {
			t.Errorf("Discover() found %d modules, want 0", n)
		}
	})

	t.Run("single file", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "module.py", "import one\n")
		units, err := p.Discover(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(units) != 1 || units[0].Path != path {
			t.Errorf("Discover() = %v, want the single module", units)
		}
	})

	t.Run("no init", func(t *testing.T) {
		src := filepath.Join(minimalStructure(t), "src")
		writeFile(t, src, "test.py", "import one\n")
		if n := discoverCount(t, p, src); n != 0 {
			t.Errorf("Discover() found %d modules, want 0", n)
		}
	})

	t.Run("ignore non python", func(t *testing.T) {
		src := filepath.Join(minimalStructure(t), "src")
		writeFile(t, src, "__init__.py", "")
		writeFile(t, src, "bla.pt", "<html/>")
		if n := discoverCount(t, p, src); n != 1 {
			t.Errorf("Discover() found %d modules, want 1", n)
		}
	})

	t.Run("deep nested", func(t *testing.T) {
		src := filepath.Join(minimalStructure(t), "src")
		for _, dir := range []string{src, filepath.Join(src, "a"), filepath.Join(src, "a", "b")} {
			writeFile(t, dir, "__init__.py", "")
			writeFile(t, dir, "bla.py", "import one\n")
		}
		// Not a package, never descended into.
		writeFile(t, filepath.Join(src, "a", "scripts"), "run.py", "import two\n")

		if n := discoverCount(t, p, src); n != 6 {
			t.Errorf("Discover() found %d modules, want 6", n)
		}
	})

	t.Run("missing top", func(t *testing.T) {
		if n := discoverCount(t, p, filepath.Join(t.TempDir(), "gone")); n != 0 {
			t.Errorf("Discover() found %d modules, want 0", n)
		}
	})
}

func TestPythonScan(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"import", "import foo", []string{"foo"}},
		{"dotted import", "import foo.bar", []string{"foo.bar"}},
		{"several imports", "import foo, bar.baz", []string{"foo", "bar.baz"}},
		{"aliased import", "import foo.bar as fb", []string{"foo.bar"}},
		{"from import", "from foo import bar", []string{"foo.bar"}},
		{"from import several", "from foo import bar, baz as b", []string{"foo.bar", "foo.baz"}},
		{"from import parenthesized", "from foo.x import (\n    bar,\n    baz,\n)", []string{"foo.x.bar", "foo.x.baz"}},
		{"wildcard", "from foo.bar import *", []string{"foo.bar"}},
		{"relative", "from . import sibling\nfrom ..x import y", nil},
		{"future", "from __future__ import annotations", nil},
		{"nested in function", "def f():\n    import foo\n    return foo", []string{"foo"}},
		{"nested in try", "try:\n    import json\nexcept ImportError:\n    import simplejson as json", []string{"json", "simplejson"}},
		{"no imports", "a = 3\n", nil},
	}

	p := NewPython(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanSource(t, p, "module.py", tt.source+"\n")
			if !slices.Equal(got, tt.want) {
				t.Errorf("Scan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPythonScanTagsTestModules(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "tests"), "test_foo.py", "import foo\n")

	names, err := NewPython(nil).Scan(context.Background(), NewUnit(dir, path))
	if err != nil {
		t.Fatal(err)
	}
	for n := range names {
		if !n.IsTest() {
			t.Errorf("%s should be tagged as test", n)
		}
		if n.Path() != path {
			t.Errorf("Path() = %q, want %q", n.Path(), path)
		}
	}
}

func TestPythonScanSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.py", "def broken(:\n    pass\n")

	_, err := NewPython(nil).Scan(context.Background(), NewUnit(dir, path))
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("Scan() error = %v, want PARSE_ERROR", err)
	}
}

func TestPythonScanMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.py")

	_, err := NewPython(nil).Scan(context.Background(), NewUnit(dir, path))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Scan() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSourceCachesReads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "import one\n")

	src := NewSource(4)
	if _, err := src.Read(path); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("import two\n"), 0644); err != nil {
		t.Fatal(err)
	}
	data, err := src.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "import one\n" {
		t.Errorf("Read() = %q, want the cached content", data)
	}
	if src.Len() != 1 {
		t.Errorf("Len() = %d, want 1", src.Len())
	}
}
