package scan

import (
	"context"
	"iter"
	"slices"

	"github.com/matzehuels/depchecker/pkg/dotted"
)

// Scanner extracts used names from one kind of source file.
type Scanner interface {
	// Name identifies the scanner in logs, stats and cache keys.
	Name() string

	// Discover lists the files below top this scanner handles. top is
	// either a directory or a single .py module.
	Discover(top string) ([]Unit, error)

	// Scan returns the names used by u. A file that cannot be parsed
	// returns an error with code PARSE_ERROR.
	Scan(ctx context.Context, u Unit) (iter.Seq[dotted.Name], error)
}

// Default returns every scanner in reporting order, sharing a new Source.
func Default() []Scanner {
	return All(NewSource(DefaultSourceSize))
}

// All returns every scanner in reporting order, reading through src.
func All(src *Source) []Scanner {
	return []Scanner{
		NewPython(src),
		NewZCML(src),
		NewFTI(src),
		NewGSMetadata(src),
		NewDjango(src),
		NewDocstrings(src),
		NewDocFiles(src),
	}
}

// Lookup returns the scanners of all whose name is in names, keeping the
// order of all.
func Lookup(all []Scanner, names ...string) []Scanner {
	var out []Scanner
	for _, s := range all {
		if slices.Contains(names, s.Name()) {
			out = append(out, s)
		}
	}
	return out
}

// tokens turns raw names into a sequence of tokens found in u. When
// forceTest is set every token is tagged as test regardless of the path.
func tokens(u Unit, names []string, forceTest bool) iter.Seq[dotted.Name] {
	test := u.Test || forceTest
	out := make([]dotted.Name, 0, len(names))
	for _, n := range names {
		out = append(out, dotted.FromFile(n, u.Path, test))
	}
	return slices.Values(out)
}
