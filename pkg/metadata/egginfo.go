package metadata

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/depchecker/pkg/errors"
)

const eggInfoSuffix = ".egg-info"

// findEggInfo returns the first *.egg-info folder of dir in lexical order,
// or "" when there is none. A missing dir has none.
func findEggInfo(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", dir)
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasSuffix(e.Name(), eggInfoSuffix) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", nil
}

func loadEggInfo(dir, egg, setupPath string) (*Package, error) {
	name := strings.TrimSuffix(filepath.Base(egg), eggInfoSuffix)
	if err := errors.ValidatePackageName(name); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "invalid egg-info folder %s", egg)
	}

	headers, err := readPkgInfo(filepath.Join(egg, "PKG-INFO"))
	if err != nil || headers["Name"] == "" || headers["Version"] == "" {
		return nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err,
			"Package %s could not be found.\nYou might need to put it in development mode,\ni.e. pip install -e .", name)
	}

	base, extras, err := readRequires(filepath.Join(egg, "requires.txt"))
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		Name:      name,
		Version:   headers["Version"],
		Dir:       dir,
		Source:    SourceEggInfo,
		SetupPath: setupPath,
	}
	if pkg.Requirements, err = parseRequirements(base, setupPath); err != nil {
		return nil, err
	}
	for _, s := range extras {
		reqs, err := parseRequirements(s.specs, setupPath)
		if err != nil {
			return nil, err
		}
		pkg.Extras = append(pkg.Extras, Extra{Name: s.name, Requirements: reqs})
	}

	if pkg.TopLevel, err = readTopLevel(dir, egg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// readPkgInfo returns the headers of a PKG-INFO file. Parsing stops at the
// first blank line, where the long description starts.
func readPkgInfo(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	headers := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		if _, seen := headers[key]; !seen {
			headers[key] = strings.TrimSpace(value)
		}
	}
	return headers, sc.Err()
}

type extraSection struct {
	name  string
	specs []string
}

var extraNameRE = regexp.MustCompile(`[^A-Za-z0-9.-]+`)

// safeExtra normalizes an extra name the way setuptools does.
func safeExtra(name string) string {
	return strings.ToLower(extraNameRE.ReplaceAllString(name, "_"))
}

// readRequires parses requires.txt. Lines before the first section and in
// "[:marker]" sections are base requirements; "[extra]" and
// "[extra:marker]" sections belong to extra. Sections of the same extra are
// merged. A missing file declares nothing.
func readRequires(path string) ([]string, []extraSection, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "read %s", path)
	}

	var base []string
	var extras []extraSection
	index := map[string]int{}
	current := -1

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			extra, _, _ := strings.Cut(line[1:len(line)-1], ":")
			extra = strings.TrimSpace(extra)
			if extra == "" {
				current = -1
				continue
			}
			extra = safeExtra(extra)
			i, ok := index[extra]
			if !ok {
				i = len(extras)
				index[extra] = i
				extras = append(extras, extraSection{name: extra})
			}
			current = i
			continue
		}
		if current < 0 {
			base = append(base, line)
		} else {
			extras[current].specs = append(extras[current].specs, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "read %s", path)
	}
	return base, extras, nil
}

// readTopLevel resolves top_level.txt against dir. The entry may name a
// folder or, for single module distributions, a .py file.
func readTopLevel(dir, egg string) (string, error) {
	path := filepath.Join(egg, "top_level.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMetadataNotFound, err,
			"top_level.txt could not be found on %s.\nIt is needed for depchecker to work properly.", egg)
	}

	var entry string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			entry = line
			break
		}
	}
	if entry == "" {
		return "", errors.New(errors.ErrCodeInvalidMetadata, "%s is empty", path)
	}

	top := filepath.Join(dir, entry)
	if pathExists(top) {
		return top, nil
	}
	if module := top + ".py"; fileExists(module) {
		return module, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMetadata,
		"%s does not exist but %s points there.\nMaybe you need to put the package in development again?", top, path)
}
