package scan

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/matzehuels/depchecker/pkg/dotted"
)

// DocFiles scans doctests in plain text and reStructuredText files.
// Everything found there is test usage.
type DocFiles struct {
	src *Source
}

// NewDocFiles creates the doc file scanner.
func NewDocFiles(src *Source) *DocFiles { return &DocFiles{src: src} }

func (*DocFiles) Name() string { return "docfiles" }

// Discover lists every .txt and .rst file below top.
func (*DocFiles) Discover(top string) ([]Unit, error) {
	return discoverFiles(top, func(path string, _ fs.DirEntry) bool {
		switch filepath.Ext(path) {
		case ".txt", ".rst":
			return true
		}
		return false
	})
}

func (d *DocFiles) Scan(ctx context.Context, u Unit) (iter.Seq[dotted.Name], error) {
	data, err := readUnit(d.src, u)
	if err != nil {
		return nil, err
	}
	return tokens(u, doctestImports(ctx, string(data)), true), nil
}
