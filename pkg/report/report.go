package report

import (
	"slices"

	"github.com/matzehuels/depchecker/pkg/checker"
	"github.com/matzehuels/depchecker/pkg/dotted"
	"github.com/matzehuels/depchecker/pkg/imports"
	"github.com/matzehuels/depchecker/pkg/metadata"
)

// Kind identifies one report section.
type Kind string

const (
	KindMissing      Kind = "missing"
	KindMissingTest  Kind = "missing_test"
	KindUnneeded     Kind = "unneeded"
	KindShouldBeTest Kind = "should_be_test"
	KindUnneededTest Kind = "unneeded_test"
)

// Kinds lists the sections in output order.
var Kinds = []Kind{KindMissing, KindMissingTest, KindUnneeded, KindShouldBeTest, KindUnneededTest}

var titles = map[Kind]string{
	KindMissing:      "Missing requirements",
	KindMissingTest:  "Missing test requirements",
	KindUnneeded:     "Unneeded requirements",
	KindShouldBeTest: "Requirements that should be test requirements",
	KindUnneededTest: "Unneeded test requirements",
}

// Title returns the section heading.
func (k Kind) Title() string { return titles[k] }

// Entry is one finding and the files it was seen in.
type Entry struct {
	Name  string   `json:"name" yaml:"name"`
	Files []string `json:"files" yaml:"files"`
}

// Section is a titled list of findings.
type Section struct {
	Kind    Kind
	Entries []Entry
}

// Status classifies a declared requirement in the reconciliation graph.
type Status string

const (
	StatusUsed         Status = "used"
	StatusUnneeded     Status = "unneeded"
	StatusShouldBeTest Status = "should_be_test"
	StatusUnneededTest Status = "unneeded_test"
	StatusIgnored      Status = "ignored"
)

// Requirement is a declared requirement together with the used names it
// satisfies.
type Requirement struct {
	Name      string
	Extra     string
	Status    Status
	Satisfies []string
}

// Report holds the evaluated findings of one check.
type Report struct {
	Package      string
	Source       metadata.Source
	Sections     []Section
	Requirements []Requirement
}

// Build evaluates every query of db once.
func Build(db *imports.Database) *Report {
	rep := &Report{Package: db.OwnName().String()}

	imported := db.Imports()
	importFiles := func(test bool) func(dotted.Name) []string {
		return func(n dotted.Name) []string {
			var files []string
			for _, i := range imported {
				if i.IsTest() == test && i.Equal(n) && i.Path() != "" {
					files = append(files, i.Path())
				}
			}
			return files
		}
	}
	declaredIn := func(n dotted.Name) []string {
		if n.Path() == "" {
			return nil
		}
		return []string{n.Path()}
	}
	usedIn := func(n dotted.Name) []string {
		var files []string
		for _, i := range db.Usage(n) {
			if i.Path() != "" {
				files = append(files, i.Path())
			}
		}
		return files
	}

	missing := db.MissingImports()
	missingTest := db.MissingTestImports()
	unneeded := db.UnneededRequirements()
	shouldBeTest := db.RequirementsThatShouldBeTestRequirements()
	unneededTest := db.UnneededTestRequirements()

	rep.Sections = []Section{
		newSection(KindMissing, missing, importFiles(false)),
		newSection(KindMissingTest, missingTest, importFiles(true)),
		newSection(KindUnneeded, unneeded, declaredIn),
		newSection(KindShouldBeTest, shouldBeTest, usedIn),
		newSection(KindUnneededTest, unneededTest, declaredIn),
	}

	status := func(n dotted.Name) Status {
		switch {
		case slices.ContainsFunc(unneeded, n.Equal):
			return StatusUnneeded
		case slices.ContainsFunc(shouldBeTest, n.Equal):
			return StatusShouldBeTest
		case slices.ContainsFunc(unneededTest, n.Equal):
			return StatusUnneededTest
		case slices.ContainsFunc(db.Ignored(), n.Equal):
			return StatusIgnored
		}
		return StatusUsed
	}
	addRequirement := func(n dotted.Name, extra string) {
		var satisfies []string
		for _, i := range db.Usage(n) {
			satisfies = append(satisfies, i.String())
		}
		rep.Requirements = append(rep.Requirements, Requirement{
			Name:      n.String(),
			Extra:     extra,
			Status:    status(n),
			Satisfies: satisfies,
		})
	}
	for _, n := range db.Requirements() {
		addRequirement(n, "")
	}
	for _, extra := range db.Extras() {
		for _, n := range db.ExtraRequirements(extra) {
			addRequirement(n, extra)
		}
	}
	return rep
}

// FromResult builds the report of a finished check.
func FromResult(res *checker.Result) *Report {
	rep := Build(res.DB)
	if res.Package != nil {
		rep.Package = res.Package.Name
		rep.Source = res.Package.Source
	}
	return rep
}

func newSection(kind Kind, names []dotted.Name, files func(dotted.Name) []string) Section {
	s := Section{Kind: kind, Entries: make([]Entry, 0, len(names))}
	for _, n := range names {
		f := slices.Compact(slices.Sorted(slices.Values(files(n))))
		if f == nil {
			f = []string{}
		}
		s.Entries = append(s.Entries, Entry{Name: n.String(), Files: f})
	}
	return s
}

// Section returns the section of the given kind.
func (r *Report) Section(kind Kind) Section {
	for _, s := range r.Sections {
		if s.Kind == kind {
			return s
		}
	}
	return Section{Kind: kind}
}

// Findings counts the entries over all sections.
func (r *Report) Findings() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Entries)
	}
	return n
}

// ExitCode is 1 when any section has an entry, 0 otherwise.
func (r *Report) ExitCode() int {
	if r.Findings() > 0 {
		return 1
	}
	return 0
}
