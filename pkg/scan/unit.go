package scan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// testPathRE matches a path segment or file name mentioning test or tests:
// "/tests/", "/blatest/", "/test.py", "/testsohlala.py".
var testPathRE = regexp.MustCompile(
	sep + `\w*tests?(` + sep + `|\w*\.\w+)`,
)

var sep = regexp.QuoteMeta(string(filepath.Separator))

// Unit is one file handed to a scanner.
type Unit struct {
	// Top is the package source root the file was discovered from.
	Top string
	// Path is the file path.
	Path string
	// Test is set when the path inside Top looks like test code.
	Test bool
}

// NewUnit builds the unit for path found below top.
func NewUnit(top, path string) Unit {
	return Unit{Top: top, Path: path, Test: IsTestPath(top, path)}
}

// IsTestPath reports whether path is test code. Only the part of path
// below top is inspected, so a checkout living in ~/testing/ is not all
// test code.
func IsTestPath(top, path string) bool {
	rel := path
	if strings.HasPrefix(path, top) {
		rel = path[len(top):]
	}
	return testPathRE.MatchString(rel)
}

// isPythonFile reports whether top names a single module distribution.
func isPythonFile(top string) bool {
	return strings.HasSuffix(top, ".py")
}

// discoverPackages lists the .py files of the package rooted at top. The
// walk stops at directories without an __init__.py. A top that is itself a
// .py file is returned alone.
func discoverPackages(top string) ([]Unit, error) {
	if isPythonFile(top) {
		return []Unit{NewUnit(top, top)}, nil
	}

	var units []Unit
	err := walk(top, func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			if !exists(filepath.Join(path, "__init__.py")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".py") {
			units = append(units, NewUnit(top, path))
		}
		return nil
	})
	return units, err
}

// discoverFiles lists every file below top accepted by match. Single module
// distributions have nothing to offer.
func discoverFiles(top string, match func(path string, d fs.DirEntry) bool) ([]Unit, error) {
	if isPythonFile(top) {
		return nil, nil
	}

	var units []Unit
	err := walk(top, func(path string, d fs.DirEntry) error {
		if !d.IsDir() && match(path, d) {
			units = append(units, NewUnit(top, path))
		}
		return nil
	})
	return units, err
}

// walk is filepath.WalkDir that treats a missing root as empty.
func walk(root string, fn func(path string, d fs.DirEntry) error) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return fn(path, d)
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
