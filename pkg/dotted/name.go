package dotted

import (
	"regexp"
	"strings"

	"github.com/matzehuels/depchecker/pkg/errors"
)

// Name is an immutable dotted name, optionally carrying the file it was
// found in and whether that file belongs to the test suite.
type Name struct {
	name       string
	safe       string
	namespaces []string
	path       string
	test       bool
}

// New builds a Name from a raw string.
func New(name string) Name {
	safe := SafeName(name)
	return Name{
		name:       name,
		safe:       safe,
		namespaces: strings.Split(safe, "."),
	}
}

// FromFile builds a Name found in path. test marks names discovered in a
// testing context.
func FromFile(name, path string, test bool) Name {
	n := New(name)
	n.path = path
	n.test = test
	return n
}

// requirementNameRE captures the project name of a PEP 508 requirement,
// leaving out extras, version specifiers, URLs and environment markers.
var requirementNameRE = regexp.MustCompile(`^\s*([A-Za-z0-9][A-Za-z0-9._-]*)`)

// FromRequirement reduces a requirement specification such as
// "foo[extra]>=1.0; python_version<'3'" to the Name "foo".
func FromRequirement(spec, path string) (Name, error) {
	m := requirementNameRE.FindStringSubmatch(spec)
	if m == nil {
		return Name{}, errors.New(errors.ErrCodeInvalidRequirement, "invalid requirement: %q", strings.TrimSpace(spec))
	}
	project := strings.TrimRight(m[1], "._-")
	if err := errors.ValidatePythonPackageName(project); err != nil {
		return Name{}, errors.Wrap(errors.ErrCodeInvalidRequirement, err, "invalid requirement: %q", strings.TrimSpace(spec))
	}
	return FromFile(project, path, false), nil
}

// SafeName lowercases name and maps "-" to "_".
func SafeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}

// String returns the name as it was encountered.
func (n Name) String() string { return n.name }

// Key returns the case- and separator-insensitive comparison key.
func (n Name) Key() string { return n.safe }

// Namespaces returns the segments of the safe name.
func (n Name) Namespaces() []string {
	return append([]string(nil), n.namespaces...)
}

// IsNamespaced reports whether the name has more than one segment.
func (n Name) IsNamespaced() bool { return len(n.namespaces) > 1 }

// Path returns the file the name was found in, if any.
func (n Name) Path() string { return n.path }

// IsTest reports whether the name was found in a testing context.
func (n Name) IsTest() bool { return n.test }

// IsZero reports whether n is the zero Name.
func (n Name) IsZero() bool { return n.safe == "" }

// Equal compares safe names only.
func (n Name) Equal(o Name) bool { return n.safe == o.safe }

// Less orders by the original spelling, not by the safe name.
func (n Name) Less(o Name) bool { return n.name < o.name }

// In reports whether n is o or lives below it: every segment of o matches
// the corresponding segment of n. "plone.app.imaging.interfaces" is in
// "plone.app.imaging"; the reverse is false.
func (n Name) In(o Name) bool {
	if n.safe == o.safe {
		return true
	}
	if len(o.namespaces) > len(n.namespaces) {
		return false
	}
	for i, seg := range o.namespaces {
		if n.namespaces[i] != seg {
			return false
		}
	}
	return true
}

// Overlaps reports whether either name is in the other.
func (n Name) Overlaps(o Name) bool {
	return n.In(o) || o.In(n)
}
