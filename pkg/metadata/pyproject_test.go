package metadata

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/depchecker/pkg/errors"
)

const pep621 = `[build-system]
requires = ["hatchling"]

[project]
name = "My-Project"
version = "2.0"
dependencies = [
    "requests>=2",
    "zope.interface",
]

[project.optional-dependencies]
tests = ["pytest", "pytest-cov"]
docs = ["sphinx"]
`

func TestLoadPyproject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pyproject.toml"), pep621)
	writeFile(t, filepath.Join(root, "src", "my_project", "__init__.py"), "")

	pkg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if pkg.Source != SourcePyproject {
		t.Errorf("Source = %q, want %q", pkg.Source, SourcePyproject)
	}
	if pkg.Name != "My-Project" || pkg.Version != "2.0" {
		t.Errorf("Name, Version = %q, %q", pkg.Name, pkg.Version)
	}
	if want := filepath.Join(root, "src", "my_project"); pkg.TopLevel != want {
		t.Errorf("TopLevel = %q, want %q", pkg.TopLevel, want)
	}
	if want := filepath.Join(root, "pyproject.toml"); pkg.SetupPath != want {
		t.Errorf("SetupPath = %q, want %q", pkg.SetupPath, want)
	}
	if got := names(pkg.Requirements); !slices.Equal(got, []string{"requests", "zope.interface"}) {
		t.Errorf("Requirements = %v", got)
	}

	var extras []string
	for _, e := range pkg.Extras {
		extras = append(extras, e.Name)
	}
	if !slices.Equal(extras, []string{"tests", "docs"}) {
		t.Errorf("Extras = %v, want file order [tests docs]", extras)
	}
	if got := names(pkg.Extras[0].Requirements); !slices.Equal(got, []string{"pytest", "pytest-cov"}) {
		t.Errorf("tests extra = %v", got)
	}
}

func TestLoadPrefersEggInfo(t *testing.T) {
	root := eggProject(t, "one\n")
	writeFile(t, filepath.Join(root, "pyproject.toml"), pep621)

	pkg, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if pkg.Source != SourceEggInfo {
		t.Errorf("Source = %q, want egg-info", pkg.Source)
	}
}

func TestFindSources(t *testing.T) {
	root := t.TempDir()
	if _, ok := findSources(root, "pkg"); ok {
		t.Error("findSources() should fail without sources")
	}

	writeFile(t, filepath.Join(root, "a_b.py"), "")
	if got, _ := findSources(root, "A.b"); got != filepath.Join(root, "a_b.py") {
		t.Errorf("findSources() = %q", got)
	}

	writeFile(t, filepath.Join(root, "a_b", "__init__.py"), "")
	if got, _ := findSources(root, "a-b"); got != filepath.Join(root, "a_b") {
		t.Errorf("findSources() = %q, want the package folder", got)
	}
}

func TestLoadPyprojectErrors(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pyproject.toml"), "[project\nname = ")
		if _, err := Load(root); !errors.Is(err, errors.ErrCodeInvalidMetadata) {
			t.Errorf("Load() error = %v, want INVALID_METADATA", err)
		}
	})

	t.Run("no project table", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pyproject.toml"), "[tool.black]\nline-length = 88\n")
		if _, err := Load(root); !errors.Is(err, errors.ErrCodeMetadataNotFound) {
			t.Errorf("Load() error = %v, want METADATA_NOT_FOUND", err)
		}
	})

	t.Run("no sources", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "pyproject.toml"), pep621)
		if _, err := Load(root); !errors.Is(err, errors.ErrCodeInvalidMetadata) {
			t.Errorf("Load() error = %v, want INVALID_METADATA", err)
		}
	})
}
