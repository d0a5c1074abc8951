package imports

import (
	"slices"
	"testing"
)

func TestMissingImports(t *testing.T) {
	tests := []struct {
		name         string
		requirements []string
		imports      []string
		want         []string
	}{
		{"imports below a requirement", []string{"zope.component"}, []string{"zope.component.adapter", "zope.component.another.one"}, []string{}},
		{"requirement below an import", []string{"some.thing.else"}, []string{"some.thing"}, []string{"some.thing"}},
		{"stdlib dropped", []string{"one", "two"}, []string{"zope.component", "os.path.join", "sys.version_info"}, []string{"zope.component"}},
		{"case and separator insensitive", []string{"Zope.Component"}, []string{"zope.component.interfaces"}, []string{}},
		{"sorted and unique", nil, []string{"zeta", "Alpha", "zeta.sub", "beta"}, []string{"Alpha", "beta", "zeta", "zeta.sub"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := newTestDB(t)
			db.AddRequirements(seq(tt.requirements...))
			db.AddImports(seq(tt.imports...))

			got := nameList(db.MissingImports())
			if !slices.Equal(got, tt.want) {
				t.Errorf("MissingImports() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnneededRequirements(t *testing.T) {
	tests := []struct {
		name         string
		requirements []string
		extras       map[string][]string
		imports      []string
		want         []string
	}{
		{"used below", []string{"zope.component"}, nil, []string{"zope.component.adapter"}, []string{}},
		{"import above requirement", []string{"some.thing.else"}, nil, []string{"some.thing"}, []string{"some.thing.else"}},
		{"nothing used", []string{"one", "two"}, nil, []string{"zope.component", "os.path.join"}, []string{"one", "two"}},
		{"infrastructure never unneeded", []string{"setuptools", "distribute"}, nil, nil, []string{}},
		{"test extra left out", nil, map[string][]string{"test": {"pytest"}, "tests": {"mock"}}, nil, []string{}},
		{"other extras included", nil, map[string][]string{"docs": {"sphinx"}}, nil, []string{"sphinx"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _ := newTestDB(t)
			db.AddRequirements(seq(tt.requirements...))
			for _, extra := range []string{"docs", "test", "tests"} {
				if reqs, ok := tt.extras[extra]; ok {
					db.AddExtraRequirements(extra, seq(reqs...))
				}
			}
			db.AddImports(seq(tt.imports...))

			got := nameList(db.UnneededRequirements())
			if !slices.Equal(got, tt.want) {
				t.Errorf("UnneededRequirements() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnneededTestRequirements(t *testing.T) {
	db, _ := newTestDB(t)
	db.AddExtraRequirements("test", seq("one", "three"))
	db.AddImports(testSeq("one"))

	if got := nameList(db.UnneededTestRequirements()); !slices.Equal(got, []string{"three"}) {
		t.Errorf("UnneededTestRequirements() = %v, want [three]", got)
	}
}

func TestUnneededTestRequirementsIgnoresCodeImports(t *testing.T) {
	db, _ := newTestDB(t)
	db.AddExtraRequirements("tests", seq("one"))
	db.AddImports(seq("one"))

	// A plain import still makes the requirement needed.
	if got := db.UnneededTestRequirements(); len(got) != 0 {
		t.Errorf("UnneededTestRequirements() = %v, want empty", nameList(got))
	}
}

func TestTestContextSeparatesMissingQueries(t *testing.T) {
	db, _ := newTestDB(t)
	db.AddImports(seq("only.code"))
	db.AddImports(testSeq("only.tests"))

	if got := nameList(db.MissingImports()); !slices.Equal(got, []string{"only.code"}) {
		t.Errorf("MissingImports() = %v, want [only.code]", got)
	}
	if got := nameList(db.MissingTestImports()); !slices.Equal(got, []string{"only.tests"}) {
		t.Errorf("MissingTestImports() = %v, want [only.tests]", got)
	}
}

func TestMissingTestImportsUsesTestExtra(t *testing.T) {
	db, _ := newTestDB(t)
	db.AddRequirements(seq("base"))
	db.AddExtraRequirements("test", seq("pytest"))
	db.AddImports(testSeq("base.module", "pytest.fixtures", "mock"))

	if got := nameList(db.MissingTestImports()); !slices.Equal(got, []string{"mock"}) {
		t.Errorf("MissingTestImports() = %v, want [mock]", got)
	}
}

func TestRequirementsThatShouldBeTestRequirements(t *testing.T) {
	db, _ := newTestDB(t)
	db.AddRequirements(seq("both", "tests.only", "unused"))
	db.AddImports(seq("both"))
	db.AddImports(testSeq("both", "tests.only.helpers"))

	got := nameList(db.RequirementsThatShouldBeTestRequirements())
	if !slices.Equal(got, []string{"tests.only"}) {
		t.Errorf("RequirementsThatShouldBeTestRequirements() = %v, want [tests.only]", got)
	}
}

// ignoreFixture yields one finding per query, all living in "ign".
func ignoreFixture(t *testing.T, ignore bool) *Database {
	t.Helper()
	db, _ := newTestDB(t)
	db.AddRequirements(seq("ign.unneeded", "ign.moved"))
	db.AddExtraRequirements("test", seq("ign.testreq"))
	if ignore {
		db.AddIgnoredPackages([]string{"ign"})
	}
	db.AddImports(seq("ign.missing"))
	db.AddImports(testSeq("ign.missingtest", "ign.moved.x"))
	return db
}

func TestIgnoredPackagesDroppedFromEveryQuery(t *testing.T) {
	queries := []struct {
		name  string
		query func(*Database) []string
		want  string
	}{
		{"MissingImports", func(db *Database) []string { return nameList(db.MissingImports()) }, "ign.missing"},
		{"MissingTestImports", func(db *Database) []string { return nameList(db.MissingTestImports()) }, "ign.missingtest"},
		{"UnneededRequirements", func(db *Database) []string { return nameList(db.UnneededRequirements()) }, "ign.unneeded"},
		{"RequirementsThatShouldBeTestRequirements", func(db *Database) []string { return nameList(db.RequirementsThatShouldBeTestRequirements()) }, "ign.moved"},
		{"UnneededTestRequirements", func(db *Database) []string { return nameList(db.UnneededTestRequirements()) }, "ign.testreq"},
	}
	for _, q := range queries {
		t.Run(q.name, func(t *testing.T) {
			if got := q.query(ignoreFixture(t, false)); !slices.Equal(got, []string{q.want}) {
				t.Fatalf("without ignore = %v, want [%s]", got, q.want)
			}
			if got := q.query(ignoreFixture(t, true)); len(got) != 0 {
				t.Errorf("with ignore = %v, want empty", got)
			}
		})
	}
}
