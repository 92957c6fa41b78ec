// Package formatter renders service results for the terminal.
package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bxtheory/examplan/internal/schedule"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ValidationBadge returns a colored pass/fail indicator for a plan.
func ValidationBadge(ok bool) string {
	if ok {
		return StyleGreen.Render("✔ VALID")
	}
	return StyleRed.Render("✗ CORRECTED")
}

// ViolationStyle returns the style for one violation kind: red for hard
// violations, yellow for soft warnings.
func ViolationStyle(v schedule.Violation) lipgloss.Style {
	if v.IsHard() {
		return StyleRed
	}
	return StyleYellow
}

// SourceBadge labels which path produced a plan.
func SourceBadge(source string) string {
	switch source {
	case "llm":
		return StylePurple.Render("LLM")
	case "fallback":
		return StyleBlue.Render("PACER")
	case "external":
		return StyleBlue.Render("EXTERNAL")
	default:
		return StyleDim.Render(source)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
