package scan

import (
	"context"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/matzehuels/depchecker/pkg/dotted"
	"github.com/matzehuels/depchecker/pkg/errors"
)

const settingsSuffix = "settings.py"

// Django scans Django settings modules for INSTALLED_APPS and TEST_RUNNER.
type Django struct {
	src *Source
}

// NewDjango creates the Django settings scanner.
func NewDjango(src *Source) *Django { return &Django{src: src} }

func (*Django) Name() string { return "django" }

// Discover lists every file whose name ends in settings.py.
func (*Django) Discover(top string) ([]Unit, error) {
	if isPythonFile(top) {
		if strings.HasSuffix(filepath.Base(top), settingsSuffix) {
			return []Unit{NewUnit(top, top)}, nil
		}
		return nil, nil
	}
	return discoverFiles(top, func(_ string, d fs.DirEntry) bool {
		return strings.HasSuffix(d.Name(), settingsSuffix)
	})
}

// Scan returns every string in a module level INSTALLED_APPS list or tuple,
// and the TEST_RUNNER string tagged as test usage.
func (d *Django) Scan(ctx context.Context, u Unit) (iter.Seq[dotted.Name], error) {
	data, err := readUnit(d.src, u)
	if err != nil {
		return nil, err
	}
	root, err := parsePython(ctx, data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "%s", u.Path)
	}

	var apps, runners []string
	for _, stmt := range children(root) {
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() == 0 {
			continue
		}
		assign := stmt.NamedChild(0)
		if assign.Type() != "assignment" {
			continue
		}
		left, right := assign.ChildByFieldName("left"), assign.ChildByFieldName("right")
		if left == nil || right == nil || left.Type() != "identifier" {
			continue
		}

		switch left.Content(data) {
		case "INSTALLED_APPS":
			apps = append(apps, sequenceStrings(right, data)...)
		case "TEST_RUNNER":
			if s, ok := stringValue(right, data); ok && strings.TrimSpace(s) != "" {
				runners = append(runners, s)
			}
		}
	}

	out := tokens(u, apps, false)
	if len(runners) == 0 {
		return out, nil
	}
	return concat(out, tokens(u, runners, true)), nil
}

// sequenceStrings returns the non-blank string elements of a list or tuple
// literal. Other values yield nothing.
func sequenceStrings(n *sitter.Node, src []byte) []string {
	switch n.Type() {
	case "list", "tuple":
	default:
		return nil
	}
	var out []string
	for _, c := range children(n) {
		if s, ok := stringValue(c, src); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func concat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}
