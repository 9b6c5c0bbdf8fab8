package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"osimkit/internal/catalog"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

type browser struct {
	runs   []catalog.Run
	cursor int
	detail bool

	width  int
	height int
}

func newBrowser(runs []catalog.Run) browser {
	return browser{runs: runs, width: 80, height: 24}
}

func (b browser) Init() tea.Cmd { return nil }

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if b.detail {
				b.detail = false
				return b, nil
			}
			return b, tea.Quit
		case "esc":
			b.detail = false
		case "up", "k":
			if !b.detail && b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if !b.detail && b.cursor < len(b.runs)-1 {
				b.cursor++
			}
		case "enter", " ":
			if len(b.runs) > 0 {
				b.detail = !b.detail
			}
		}
	}
	return b, nil
}

func (b browser) View() string {
	var s strings.Builder

	s.WriteString("\n")
	s.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	s.WriteString("          " + cyan.Render("o s i m k i t") + "\n")
	s.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	s.WriteString("\n")

	if len(b.runs) == 0 {
		s.WriteString("      " + dim.Render("no recorded runs") + "\n")
		s.WriteString("\n      " + dimmer.Render("q quit") + "\n")
		return s.String()
	}

	if b.detail {
		b.viewDetail(&s)
	} else {
		b.viewList(&s)
	}
	return s.String()
}

func (b browser) viewList(s *strings.Builder) {
	for i, run := range b.runs {
		when := run.Timestamp.Format("2006-01-02 15:04")
		line := fmt.Sprintf("%-28s %-14s %s", run.ID, run.ProbeKind, when)
		if i == b.cursor {
			s.WriteString("      " + cyan.Render("▸ ") + white.Render(line) + "\n")
		} else {
			s.WriteString("        " + dim.Render(line) + "\n")
		}
	}
	s.WriteString("\n      " + dimmer.Render("↑/↓ select · enter details · q quit") + "\n")
}

func (b browser) viewDetail(s *strings.Builder) {
	run := b.runs[b.cursor]

	s.WriteString("      " + white.Render(run.ID) + "\n\n")
	s.WriteString("      " + dim.Render("model:   ") + run.ModelFile + "\n")
	s.WriteString("      " + dim.Render("states:  ") + run.StatesFile + "\n")
	s.WriteString("      " + dim.Render("probe:   ") + run.ProbeKind + "\n")
	s.WriteString("      " + dim.Render("results: ") + run.ResultsDir + "\n")
	s.WriteString("      " + dim.Render("when:    ") + run.Timestamp.Format("2006-01-02 15:04:05") + "\n")

	if len(run.Metrics) > 0 {
		s.WriteString("\n")
		keys := make([]string, 0, len(run.Metrics))
		for k := range run.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			s.WriteString("      " + green.Render(fmt.Sprintf("%-16s", k)) + fmt.Sprintf("%.3f", run.Metrics[k]) + "\n")
		}
	}

	s.WriteString("\n      " + dimmer.Render("esc back · q quit") + "\n")
}

// Browse opens the run catalog at catalogPath and starts the interactive
// run browser.
func Browse(catalogPath string) error {
	ctx := context.Background()

	cat, err := catalog.Open(ctx, catalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	runs, err := cat.ListRuns(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newBrowser(runs), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
