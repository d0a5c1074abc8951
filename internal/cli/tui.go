package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/depchecker/pkg/report"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ReportModel - Interactive report browser
// =============================================================================

// ReportModel is the bubbletea model browsing the sections of a report.
type ReportModel struct {
	Report   *report.Report
	Sections []report.Section
	Tab      int
	Cursor   int
	Offset   int
	Height   int
}

// NewReportModel creates a browser over the non-empty sections of rep.
func NewReportModel(rep *report.Report) ReportModel {
	m := ReportModel{Report: rep, Height: 15}
	for _, s := range rep.Sections {
		if len(s.Entries) > 0 {
			m.Sections = append(m.Sections, s)
		}
	}
	return m
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			if len(m.Sections) > 0 {
				m.Tab = (m.Tab + 1) % len(m.Sections)
				m.Cursor, m.Offset = 0, 0
			}
		case "shift+tab", "left", "h":
			if len(m.Sections) > 0 {
				m.Tab = (m.Tab + len(m.Sections) - 1) % len(m.Sections)
				m.Cursor, m.Offset = 0, 0
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.entries())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-8)
	}
	return m, nil
}

func (m ReportModel) entries() []report.Entry {
	if len(m.Sections) == 0 {
		return nil
	}
	return m.Sections[m.Tab].Entries
}

func (m ReportModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("depchecker: " + m.Report.Package))
	b.WriteString("\n")
	if len(m.Sections) == 0 {
		b.WriteString(StyleSuccess.Render(iconSuccess + " No problems found"))
		b.WriteString("\n\n")
		b.WriteString(listDimStyle.Render("q quit"))
		return b.String()
	}
	b.WriteString(listDimStyle.Render("⇥/←/→ section  ↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.Sections))
	for i, s := range m.Sections {
		label := fmt.Sprintf("%s (%d)", s.Kind.Title(), len(s.Entries))
		if i == m.Tab {
			tabs[i] = listSelectedStyle.Render(label)
		} else {
			tabs[i] = listNormalStyle.Render(label)
		}
	}
	b.WriteString(strings.Join(tabs, listDimStyle.Render(" · ")))
	b.WriteString("\n")

	entries := m.entries()
	end := min(m.Offset+m.Height, len(entries))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		files := "—"
		if len(e.Files) > 0 {
			files = strings.Join(e.Files, ", ")
		}
		rows = append(rows, []string{cursor, e.Name, files})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Files").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				if col == 2 {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				}
				return lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
			}
			if col == 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(entries))))

	return b.String()
}

// browse runs the report browser until the user quits.
func browse(rep *report.Report) error {
	_, err := tea.NewProgram(NewReportModel(rep), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("report browser: %w", err)
	}
	return nil
}
