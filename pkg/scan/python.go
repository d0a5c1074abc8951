package scan

import (
	"context"
	"iter"

	"github.com/matzehuels/depchecker/pkg/dotted"
	"github.com/matzehuels/depchecker/pkg/errors"
)

// Python scans the import statements of Python modules.
type Python struct {
	src *Source
}

// NewPython creates the Python module scanner.
func NewPython(src *Source) *Python { return &Python{src: src} }

func (*Python) Name() string { return "python" }

// Discover lists the modules of the package tree at top.
func (*Python) Discover(top string) ([]Unit, error) {
	return discoverPackages(top)
}

func (p *Python) Scan(ctx context.Context, u Unit) (iter.Seq[dotted.Name], error) {
	data, err := readUnit(p.src, u)
	if err != nil {
		return nil, err
	}
	root, err := parsePython(ctx, data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "%s", u.Path)
	}
	return tokens(u, importNames(root, data), false), nil
}
