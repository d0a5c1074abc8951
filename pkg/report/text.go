package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/depchecker/pkg/metadata"
)

const eggInfoNote = "Note: requirements are taken from the egginfo dir, so you need\n" +
	"to re-run buildout (or setup.py or whatever) for changes in\n" +
	"setup.py to have effect.\n"

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleRule   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleName   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleNote   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// textStyles renders the plain layout, optionally colored.
type textStyles struct {
	header, rule, name, note func(string) string
}

func newTextStyles(styled bool) textStyles {
	if !styled {
		plain := func(s string) string { return s }
		return textStyles{plain, plain, plain, plain}
	}
	wrap := func(s lipgloss.Style) func(string) string { return func(v string) string { return s.Render(v) } }
	return textStyles{wrap(styleHeader), wrap(styleRule), wrap(styleName), wrap(styleNote)}
}

// WriteText writes the classic report layout: a blank line, the title and
// an underline of equal length per non-empty section, one indented name per
// finding.
func WriteText(w io.Writer, r *Report, opts Options) error {
	st := newTextStyles(opts.Styled)
	bw := bufio.NewWriter(w)

	for _, s := range r.Sections {
		if len(s.Entries) == 0 {
			continue
		}
		title := s.Kind.Title()
		bw.WriteString("\n")
		bw.WriteString(st.header(title) + "\n")
		bw.WriteString(st.rule(strings.Repeat("=", len(title))) + "\n")
		for _, e := range s.Entries {
			bw.WriteString("     " + st.name(e.Name) + "\n")
		}
	}

	if r.Source == metadata.SourceEggInfo && r.Findings() > 0 {
		bw.WriteString("\n")
		for line := range strings.Lines(eggInfoNote) {
			bw.WriteString(st.note(strings.TrimSuffix(line, "\n")) + "\n")
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
