package scan

import (
	"context"
	"io/fs"
	"iter"
	"strings"

	"github.com/matzehuels/depchecker/pkg/dotted"
	"github.com/matzehuels/depchecker/pkg/errors"
)

const profilePrefix = "profile-"

// GSMetadata scans GenericSetup metadata.xml files for profile
// dependencies.
type GSMetadata struct {
	src *Source
}

// NewGSMetadata creates the GenericSetup metadata scanner.
func NewGSMetadata(src *Source) *GSMetadata { return &GSMetadata{src: src} }

func (*GSMetadata) Name() string { return "gsmetadata" }

// Discover lists every metadata.xml below top.
func (*GSMetadata) Discover(top string) ([]Unit, error) {
	return discoverFiles(top, func(_ string, d fs.DirEntry) bool {
		return d.Name() == "metadata.xml"
	})
}

// Scan turns each "profile-<name>:<profile>" dependency into <name>.
func (g *GSMetadata) Scan(_ context.Context, u Unit) (iter.Seq[dotted.Name], error) {
	data, err := readUnit(g.src, u)
	if err != nil {
		return nil, err
	}
	root, err := parseXML(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "%s", u.Path)
	}

	var names []string
	root.walk(func(el, parent *element) {
		if el.Name.Local != "dependency" || parent == nil || parent.Name.Local != "dependencies" {
			return
		}
		if name, ok := profileName(el.text()); ok {
			names = append(names, name)
		}
	})
	return tokens(u, names, false), nil
}

// profileName extracts the package from a profile id such as
// "profile-plone.app.caching:default".
func profileName(id string) (string, bool) {
	rest, ok := strings.CutPrefix(id, profilePrefix)
	if !ok {
		return "", false
	}
	name, _, ok := strings.Cut(rest, ":")
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
