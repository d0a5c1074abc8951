package metadata

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depchecker/pkg/errors"
)

// pyproject is the PEP 621 part of pyproject.toml.
type pyproject struct {
	Project *struct {
		Name                 string              `toml:"name"`
		Version              string              `toml:"version"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// loadPyproject reads the [project] table of root/pyproject.toml. It
// returns nil without error when there is no such table.
func loadPyproject(root string) (*Package, error) {
	path := filepath.Join(root, pyprojectToml)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "read %s", path)
	}

	var doc pyproject
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "parse %s", path)
	}
	if doc.Project == nil || doc.Project.Name == "" {
		return nil, nil
	}
	p := doc.Project

	pkg := &Package{
		Name:      p.Name,
		Version:   p.Version,
		Root:      root,
		Dir:       root,
		Source:    SourcePyproject,
		SetupPath: path,
	}
	if pkg.Requirements, err = parseRequirements(p.Dependencies, path); err != nil {
		return nil, err
	}

	// Keep the extras in file order; the decoded map has none.
	for _, key := range md.Keys() {
		if len(key) != 3 || key[0] != "project" || key[1] != "optional-dependencies" {
			continue
		}
		reqs, err := parseRequirements(p.OptionalDependencies[key[2]], path)
		if err != nil {
			return nil, err
		}
		pkg.Extras = append(pkg.Extras, Extra{Name: safeExtra(key[2]), Requirements: reqs})
	}

	top, ok := findSources(root, p.Name)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidMetadata,
			"sources of %s not found in %s", p.Name, root)
	}
	pkg.TopLevel = top
	return pkg, nil
}

// findSources guesses the import location of a distribution called name,
// preferring the src layout.
func findSources(root, name string) (string, bool) {
	module := strings.NewReplacer("-", "_", ".", "_").Replace(strings.ToLower(name))
	for _, candidate := range []string{
		filepath.Join(root, "src", module),
		filepath.Join(root, module),
		filepath.Join(root, "src", module+".py"),
		filepath.Join(root, module+".py"),
	} {
		if pathExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}
