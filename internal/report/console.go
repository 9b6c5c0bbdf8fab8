package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Successf prints a checkmark-prefixed confirmation line.
func Successf(format string, args ...any) {
	fmt.Printf("%s %s\n", okStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// Warnf prints a warning-glyph-prefixed line for soft-fail conditions.
func Warnf(format string, args ...any) {
	fmt.Printf("%s %s\n", warnStyle.Render("⚠"), fmt.Sprintf(format, args...))
}
