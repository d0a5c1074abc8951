package scan

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/matzehuels/depchecker/pkg/dotted"
	"github.com/matzehuels/depchecker/pkg/errors"
)

// FTI scans Plone factory type information, the XML files kept in a
// "types" folder of a GenericSetup profile.
type FTI struct {
	src *Source
}

// NewFTI creates the FTI scanner.
func NewFTI(src *Source) *FTI { return &FTI{src: src} }

func (*FTI) Name() string { return "fti" }

// Discover lists every .xml file whose parent folder is named types.
func (*FTI) Discover(top string) ([]Unit, error) {
	return discoverFiles(top, func(path string, _ fs.DirEntry) bool {
		return filepath.Ext(path) == ".xml" && filepath.Base(filepath.Dir(path)) == "types"
	})
}

// Scan returns the klass and schema properties and every behavior.
func (f *FTI) Scan(_ context.Context, u Unit) (iter.Seq[dotted.Name], error) {
	data, err := readUnit(f.src, u)
	if err != nil {
		return nil, err
	}
	root, err := parseXML(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "%s", u.Path)
	}

	var names []string
	root.walk(func(el, _ *element) {
		if el.Name.Local != "property" {
			return
		}
		name, _ := el.attr("name")
		switch name {
		case "klass", "schema":
			if text := el.text(); text != "" {
				names = append(names, text)
			}
		case "behaviors":
			for _, c := range el.Children {
				if c.Name.Local != "element" {
					continue
				}
				if value, _ := c.attr("value"); value != "" {
					names = append(names, value)
				}
			}
		}
	})
	return tokens(u, names, false), nil
}
