package scan

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/matzehuels/depchecker/pkg/dotted"
	"github.com/matzehuels/depchecker/pkg/errors"
)

const zopeNamespace = "http://namespaces.zope.org/"

// zcmlAttributes lists, per namespaced directive, the attributes holding
// dotted names. Keys are "<namespace>:<element>" with namespace relative to
// http://namespaces.zope.org/.
var zcmlAttributes = map[string][]string{
	"zope:include":                 {"package"},
	"zope:adapter":                 {"for", "factory", "provides"},
	"zope:utility":                 {"provides", "component"},
	"browser:page":                 {"class", "for", "layer"},
	"zope:subscriber":              {"handler", "for"},
	"zope:securityPolicy":          {"component"},
	"genericsetup:registerProfile": {"provides"},
	"zope:implements":              {"interface"},
}

// ZCML scans Zope configuration files.
type ZCML struct {
	src *Source
}

// NewZCML creates the ZCML scanner.
func NewZCML(src *Source) *ZCML { return &ZCML{src: src} }

func (*ZCML) Name() string { return "zcml" }

// Discover lists every .zcml file below top.
func (*ZCML) Discover(top string) ([]Unit, error) {
	return discoverFiles(top, func(path string, _ fs.DirEntry) bool {
		return filepath.Ext(path) == ".zcml"
	})
}

// Scan returns the dotted names referenced by known directives. Attribute
// values may hold several whitespace separated names; relative names and
// "*" are skipped.
func (z *ZCML) Scan(_ context.Context, u Unit) (iter.Seq[dotted.Name], error) {
	data, err := readUnit(z.src, u)
	if err != nil {
		return nil, err
	}
	root, err := parseXML(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "%s", u.Path)
	}

	var names []string
	root.walk(func(el, _ *element) {
		ns, ok := strings.CutPrefix(el.Name.Space, zopeNamespace)
		if !ok {
			return
		}
		for _, attr := range zcmlAttributes[ns+":"+el.Name.Local] {
			value, ok := el.attr(attr)
			if !ok {
				continue
			}
			for _, name := range strings.Fields(value) {
				if name == "*" || strings.HasPrefix(name, ".") {
					continue
				}
				names = append(names, name)
			}
		}
	})
	return tokens(u, names, false), nil
}
