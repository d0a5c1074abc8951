// Package metadata locates a Python distribution and reads what it
// declares: its name, requirements, extras and where its sources live.
//
// The primary source is the *.egg-info folder setuptools writes for a
// development install. Projects without one fall back to the PEP 621
// [project] table of pyproject.toml.
package metadata

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/depchecker/pkg/dotted"
	"github.com/matzehuels/depchecker/pkg/errors"
)

// Source names where the metadata was read from.
type Source string

const (
	SourceEggInfo   Source = "egg-info"
	SourcePyproject Source = "pyproject"
)

const (
	setupPy       = "setup.py"
	pyprojectToml = "pyproject.toml"
)

// Extra is a named optional requirement group.
type Extra struct {
	Name         string
	Requirements []dotted.Name
}

// Package is the analyzed distribution.
type Package struct {
	// Name of the distribution, as spelled by its metadata.
	Name string
	// Version from PKG-INFO or pyproject.toml, when declared.
	Version string
	// Root is the distribution root holding setup.py or pyproject.toml.
	Root string
	// Dir is the folder the metadata was found in: Root or Root/src.
	Dir string
	// Source tells whether egg-info or pyproject.toml was read.
	Source Source
	// SetupPath is recorded as the provenance of every requirement.
	SetupPath string

	Requirements []dotted.Name
	Extras       []Extra

	// TopLevel is the source folder, or single module, to scan.
	TopLevel string
}

// Load reads the metadata of the distribution rooted at root.
func Load(root string) (*Package, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "Given path is not a folder: %s", root)
	}

	setupPath, err := findSetup(root)
	if err != nil {
		return nil, err
	}

	for _, dir := range []string{root, filepath.Join(root, "src")} {
		egg, err := findEggInfo(dir)
		if err != nil {
			return nil, err
		}
		if egg == "" {
			continue
		}
		pkg, err := loadEggInfo(dir, egg, setupPath)
		if err != nil {
			return nil, err
		}
		pkg.Root = root
		return pkg, nil
	}

	pkg, err := loadPyproject(root)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, errors.New(errors.ErrCodeMetadataNotFound, ".egg-info folder could not be found")
	}
	return pkg, nil
}

// findSetup returns the file requirement tokens point back to: setup.py,
// or pyproject.toml when there is no setup.py.
func findSetup(root string) (string, error) {
	for _, name := range []string{setupPy, pyprojectToml} {
		path := filepath.Join(root, name)
		if fileExists(path) {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrCodeMetadataNotFound,
		"setup.py or pyproject.toml was not found in %s. Without it depchecker can not work.", root)
}

// parseRequirements converts requirement specifications into names.
func parseRequirements(specs []string, path string) ([]dotted.Name, error) {
	names := make([]dotted.Name, 0, len(specs))
	for _, spec := range specs {
		n, err := dotted.FromRequirement(spec, path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "invalid requirement in %s", path)
		}
		names = append(names, n)
	}
	return names, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
