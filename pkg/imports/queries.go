package imports

import (
	"slices"
	"strings"

	"github.com/matzehuels/depchecker/pkg/dotted"
)

// filter keeps a candidate when it returns true.
type filter func(dotted.Name) bool

// all combines filters with a short-circuit AND.
func all(filters []filter) filter {
	return func(n dotted.Name) bool {
		for _, f := range filters {
			if !f(n) {
				return false
			}
		}
		return true
	}
}

func not(f filter) filter {
	return func(n dotted.Name) bool { return !f(n) }
}

// run applies filters to candidates, then deduplicates and sorts.
func run(candidates []dotted.Name, filters ...filter) []dotted.Name {
	keep := all(filters)
	var out []dotted.Name
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	return dotted.Unique(out)
}

// =============================================================================
// Queries
// =============================================================================

// MissingImports returns names used outside tests that no base requirement
// provides.
func (db *Database) MissingImports() []dotted.Name {
	return run(db.imports,
		isNotTest,
		db.notInRequirements,
		db.notIgnored,
		db.notUserMapped,
	)
}

// MissingTestImports returns names used by tests that neither the base
// requirements nor the test extra provide.
func (db *Database) MissingTestImports() []dotted.Name {
	test := db.testRequirements()
	return run(db.imports,
		isTest,
		db.notInRequirements,
		func(n dotted.Name) bool { return !test.ContainsName(n) },
		db.notIgnored,
		db.notUserMapped,
	)
}

// UnneededRequirements returns declared requirements, including non-test
// extras, that nothing imports.
func (db *Database) UnneededRequirements() []dotted.Name {
	test := db.testRequirements()
	var candidates []dotted.Name
	for n := range db.allRequirements().All() {
		if !test.Has(n) {
			candidates = append(candidates, n)
		}
	}
	return run(candidates, db.unneededFilters(db.imports)...)
}

// UnneededTestRequirements returns requirements of the test extra that
// nothing imports. A user-mapped meta-package only counts as needed when
// tests use one of the names it provides.
func (db *Database) UnneededTestRequirements() []dotted.Name {
	return run(db.testRequirements().Names(), db.unneededFilters(db.testImports())...)
}

// RequirementsThatShouldBeTestRequirements returns base requirements that
// only tests use.
func (db *Database) RequirementsThatShouldBeTestRequirements() []dotted.Name {
	return run(db.requirements.Names(),
		not(db.usedBy(db.nonTestImports())),
		db.usedBy(db.testImports()),
		db.notIgnored,
	)
}

func (db *Database) unneededFilters(mappingImports []dotted.Name) []filter {
	return []filter{
		not(IsKnownPackage),
		not(IsStdlib),
		db.notImported,
		db.notIgnored,
		db.mappingNotUsed(mappingImports),
	}
}

// =============================================================================
// Filters
// =============================================================================

func isTest(n dotted.Name) bool { return n.IsTest() }

func isNotTest(n dotted.Name) bool { return !n.IsTest() }

func (db *Database) notOwnPackage(n dotted.Name) bool {
	return db.own.IsZero() || !n.In(db.own)
}

func (db *Database) notInRequirements(n dotted.Name) bool {
	return !db.requirements.ContainsName(n)
}

func (db *Database) notIgnored(n dotted.Name) bool {
	return !db.ignored.ContainsName(n)
}

// notUserMapped drops names provided by a meta-package mapping. Every
// namespace prefix of n is looked up in the reverse map, which matches n
// against the provided names by containment.
func (db *Database) notUserMapped(n dotted.Name) bool {
	_, ok := db.mappedBy(n)
	return !ok
}

// mappedBy returns the meta-package providing n, if any.
func (db *Database) mappedBy(n dotted.Name) (dotted.Name, bool) {
	ns := n.Namespaces()
	for i := len(ns); i > 0; i-- {
		if pkg, ok := db.reverse[strings.Join(ns[:i], ".")]; ok {
			return pkg, true
		}
	}
	return dotted.Name{}, false
}

// notImported keeps requirements no used name lives in. Containment runs
// from the import to the requirement: zope.interface.Interface lives in
// zope.interface, never the other way round.
func (db *Database) notImported(req dotted.Name) bool {
	return !slices.ContainsFunc(db.imports, func(i dotted.Name) bool { return i.In(req) })
}

// mappingNotUsed drops a meta-package when any name it provides is used by
// one of imports. Requirements without a mapping pass.
func (db *Database) mappingNotUsed(imports []dotted.Name) filter {
	return func(req dotted.Name) bool {
		provides := db.provided(req)
		if provides.Len() == 0 {
			return true
		}
		return !slices.ContainsFunc(imports, provides.ContainsName)
	}
}

// usedBy keeps requirements that one of imports uses, directly or through
// the requirement's user mapping.
func (db *Database) usedBy(imports []dotted.Name) filter {
	return func(req dotted.Name) bool {
		provides := db.provided(req)
		return slices.ContainsFunc(imports, func(i dotted.Name) bool {
			return i.In(req) || provides.ContainsName(i)
		})
	}
}

func (db *Database) testImports() []dotted.Name {
	return slices.DeleteFunc(slices.Clone(db.imports), isNotTest)
}

func (db *Database) nonTestImports() []dotted.Name {
	return slices.DeleteFunc(slices.Clone(db.imports), isTest)
}
