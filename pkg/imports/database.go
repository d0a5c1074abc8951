// Package imports implements the reconciliation engine that compares the
// requirements a Python distribution declares with the names its sources
// actually use.
//
// A [Database] is populated once (requirements, extras, user mappings and
// ignored packages first, then scanned imports) and queried afterwards. The
// queries never fail: odd input is logged and skipped, and every query
// returns a deterministic, sorted slice.
//
//	db := imports.New(logger)
//	db.SetOwnName("my.package")
//	db.AddRequirements(slices.Values(reqs))
//	db.AddImports(tokens)
//	missing := db.MissingImports()
package imports

import (
	"iter"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depchecker/pkg/dotted"
)

// testExtras are the extra names whose requirements are test requirements.
var testExtras = []string{"test", "tests"}

// Mapping is a user-declared meta-package and the names it provides.
type Mapping struct {
	Package  dotted.Name
	Provides *dotted.Set
}

// Database accumulates requirements and used imports of one distribution.
// It is not safe for concurrent mutation; queries may run concurrently once
// populating is finished.
type Database struct {
	logger *log.Logger

	own          dotted.Name
	requirements *dotted.Set
	extras       map[string]*dotted.Set
	extraOrder   []string
	imports      []dotted.Name
	seen         map[importKey]struct{}
	mappings     map[string]*Mapping
	mappingOrder []string
	reverse      map[string]dotted.Name
	ignored      *dotted.Set
}

type importKey struct {
	key  string
	test bool
}

// New creates an empty database. A nil logger falls back to log.Default().
func New(logger *log.Logger) *Database {
	if logger == nil {
		logger = log.Default()
	}
	return &Database{
		logger:       logger,
		requirements: dotted.NewSet(),
		extras:       make(map[string]*dotted.Set),
		seen:         make(map[importKey]struct{}),
		mappings:     make(map[string]*Mapping),
		reverse:      make(map[string]dotted.Name),
		ignored:      dotted.NewSet(),
	}
}

// =============================================================================
// Mutators
// =============================================================================

// SetOwnName records the name of the analyzed distribution. Imports of it,
// or of anything below it, are dropped by AddImports.
func (db *Database) SetOwnName(name string) {
	db.own = dotted.New(name)
}

// OwnName returns the name of the analyzed distribution.
func (db *Database) OwnName() dotted.Name { return db.own }

// AddRequirements replaces the base requirements.
func (db *Database) AddRequirements(names iter.Seq[dotted.Name]) {
	db.requirements = dotted.Collect(names)
}

// AddExtraRequirements stores the requirements of an extra, leaving out
// names already declared as base requirements. Declaring the same extra
// again merges both declarations.
func (db *Database) AddExtraRequirements(extra string, names iter.Seq[dotted.Name]) {
	filtered := dotted.NewSet()
	for n := range dotted.Collect(names).All() {
		if !db.requirements.Has(n) {
			filtered.Add(n)
		}
	}

	existing, ok := db.extras[extra]
	if !ok {
		db.extras[extra] = filtered
		db.extraOrder = append(db.extraOrder, extra)
		return
	}

	db.logger.Warnf("extra requirement %q is declared twice on setup.py", extra)
	existing.AddAll(filtered)
}

// AddUserMapping records that the declared requirement pkg provides the
// given import names. Mappings for names that are not declared, either as
// base or extra requirements, are logged and dropped.
func (db *Database) AddUserMapping(pkg string, provided []string) {
	name := dotted.New(pkg)
	if !db.allRequirements().Has(name) {
		db.logger.Infof("Ignoring user mapping %s as it is not a dependency of the package", pkg)
		return
	}

	m, ok := db.mappings[name.Key()]
	if !ok {
		m = &Mapping{Package: name, Provides: dotted.NewSet()}
		db.mappings[name.Key()] = m
		db.mappingOrder = append(db.mappingOrder, name.Key())
	}
	for _, p := range provided {
		pn := dotted.New(p)
		m.Provides.Add(pn)
		db.reverse[pn.Key()] = name
	}
}

// AddIgnoredPackages replaces the set of names excluded from every report.
func (db *Database) AddIgnoredPackages(names []string) {
	ignored := dotted.NewSet()
	for _, n := range names {
		ignored.Add(dotted.New(n))
	}
	db.ignored = ignored
}

// AddImports appends used names. Blank names, packaging infrastructure,
// the package itself and the standard library are dropped here so they never show up in
// any report. It returns how many tokens were kept.
func (db *Database) AddImports(tokens iter.Seq[dotted.Name]) int {
	if tokens == nil {
		return 0
	}
	keep := all([]filter{
		not(IsKnownPackage),
		db.notOwnPackage,
		not(IsStdlib),
	})

	kept := 0
	for n := range tokens {
		if n.IsZero() || !keep(n) {
			continue
		}
		k := importKey{key: n.Key(), test: n.IsTest()}
		if _, dup := db.seen[k]; dup {
			continue
		}
		db.seen[k] = struct{}{}
		db.imports = append(db.imports, n)
		kept++
	}
	return kept
}

// =============================================================================
// Accessors
// =============================================================================

// Requirements returns the base requirements in declaration order.
func (db *Database) Requirements() []dotted.Name { return db.requirements.Names() }

// Extras returns the extra names in declaration order.
func (db *Database) Extras() []string { return slices.Clone(db.extraOrder) }

// ExtraRequirements returns the stored requirements of an extra.
func (db *Database) ExtraRequirements(extra string) []dotted.Name {
	if s, ok := db.extras[extra]; ok {
		return s.Names()
	}
	return nil
}

// Imports returns the used names kept by AddImports.
func (db *Database) Imports() []dotted.Name { return slices.Clone(db.imports) }

// UserMappings returns the accepted user mappings in the order they were added.
func (db *Database) UserMappings() []Mapping {
	out := make([]Mapping, 0, len(db.mappingOrder))
	for _, k := range db.mappingOrder {
		out = append(out, *db.mappings[k])
	}
	return out
}

// UserMapping returns the mapping declared for pkg, if any.
func (db *Database) UserMapping(pkg string) (Mapping, bool) {
	m, ok := db.mappings[dotted.SafeName(pkg)]
	if !ok {
		return Mapping{}, false
	}
	return *m, true
}

// Ignored returns the ignored names.
func (db *Database) Ignored() []dotted.Name { return db.ignored.Names() }

// Usage returns the used names satisfied by req, directly or through a user
// mapping. The result is unique and sorted.
func (db *Database) Usage(req dotted.Name) []dotted.Name {
	provides := db.provided(req)
	var out []dotted.Name
	for _, i := range db.imports {
		if i.In(req) || provides.ContainsName(i) {
			out = append(out, i)
		}
	}
	return dotted.Unique(out)
}

// allRequirements is the union of base requirements and every extra.
func (db *Database) allRequirements() *dotted.Set {
	all := dotted.NewSet(db.requirements.Names()...)
	for _, extra := range db.extraOrder {
		all.AddAll(db.extras[extra])
	}
	return all
}

// testRequirements merges the "test" and "tests" extras.
func (db *Database) testRequirements() *dotted.Set {
	out := dotted.NewSet()
	for _, name := range testExtras {
		if s, ok := db.extras[name]; ok {
			out.AddAll(s)
		}
	}
	return out
}

// provided returns the names a user mapping declares for req.
func (db *Database) provided(req dotted.Name) *dotted.Set {
	if m, ok := db.mappings[req.Key()]; ok {
		return m.Provides
	}
	return dotted.NewSet()
}
