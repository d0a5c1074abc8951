// Package config reads the user configuration of a checked distribution,
// the [tool.dependencychecker] table of its pyproject.toml:
//
//	[tool.dependencychecker]
//	Zope2 = ["Products.Five", "Products.OFSP"]
//	ignore-packages = ["setuptools_scm"]
//
// Every key holding a list declares a meta-package mapping: the requirement
// named by the key provides the listed import names. ignore-packages names
// packages that are never reported.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depchecker/pkg/errors"
)

// FileName is the configuration file looked up in the distribution root.
const FileName = "pyproject.toml"

const ignoreKey = "ignore-packages"

// IgnoreNotListWarning is reported when ignore-packages holds anything but
// a list.
const IgnoreNotListWarning = "ignore-packages key in pyproject.toml needs to be a list, even for a single package to be ignored."

// Config is the user configuration. The zero value configures nothing.
type Config struct {
	// Path of the file read, empty when there was none.
	Path string
	// Mappings maps a requirement to the import names it provides.
	Mappings map[string][]string
	// Ignore lists packages excluded from every report. Nil when not set.
	Ignore []string
	// Warnings collects problems that did not prevent loading.
	Warnings []string
}

// Load reads root/pyproject.toml. A missing file, or one without a
// [tool.dependencychecker] table, yields an empty Config.
func Load(root string) (*Config, error) {
	cfg := &Config{Mappings: map[string][]string{}}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	cfg.Path = path

	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	tool, _ := doc["tool"].(map[string]any)
	table, _ := tool["dependencychecker"].(map[string]any)
	for key, value := range table {
		list, isList := value.([]any)
		if key == ignoreKey {
			if !isList {
				cfg.Warnings = append(cfg.Warnings, IgnoreNotListWarning)
				continue
			}
			cfg.Ignore = stringValues(list)
			continue
		}
		if isList {
			cfg.Mappings[key] = stringValues(list)
		}
	}
	return cfg, nil
}

// stringValues keeps the string elements of a TOML array.
func stringValues(list []any) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Target receives the configuration. *imports.Database implements it.
type Target interface {
	AddUserMapping(pkg string, provided []string)
	AddIgnoredPackages(names []string)
}

// Apply pushes the mappings, in key order, and the ignore list into t.
func (c *Config) Apply(t Target) {
	for _, pkg := range c.MappingNames() {
		t.AddUserMapping(pkg, c.Mappings[pkg])
	}
	if c.Ignore != nil {
		t.AddIgnoredPackages(c.Ignore)
	}
}

// MappingNames returns the mapped requirements sorted.
func (c *Config) MappingNames() []string {
	names := make([]string, 0, len(c.Mappings))
	for k := range c.Mappings {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
