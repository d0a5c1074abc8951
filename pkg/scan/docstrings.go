package scan

import (
	"context"
	"iter"

	"github.com/matzehuels/depchecker/pkg/dotted"
	"github.com/matzehuels/depchecker/pkg/errors"
)

// Docstrings scans the doctest examples embedded in module, class and
// function docstrings. Everything found there is test usage.
type Docstrings struct {
	src *Source
}

// NewDocstrings creates the docstring scanner.
func NewDocstrings(src *Source) *Docstrings { return &Docstrings{src: src} }

func (*Docstrings) Name() string { return "docstrings" }

// Discover lists the same modules as the Python scanner.
func (*Docstrings) Discover(top string) ([]Unit, error) {
	return discoverPackages(top)
}

func (d *Docstrings) Scan(ctx context.Context, u Unit) (iter.Seq[dotted.Name], error) {
	data, err := readUnit(d.src, u)
	if err != nil {
		return nil, err
	}
	root, err := parsePython(ctx, data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "%s", u.Path)
	}

	var names []string
	for _, doc := range docstrings(root, data) {
		names = append(names, doctestImports(ctx, doc)...)
	}
	return tokens(u, names, true), nil
}
