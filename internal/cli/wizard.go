package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bxtheory/examplan/internal/cli/formatter"
	"github.com/bxtheory/examplan/internal/domain"
)

// examplanHuhTheme returns a custom huh theme using the Gruvbox palette.
func examplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runCourseWizard walks the user through entering a course by hand: name,
// chapters with pages and complexity, and the exam horizon. Returns the
// topic list and the days until the exam (0 = not given).
func runCourseWizard() (*domain.TopicList, int, error) {
	var courseName, daysStr string

	intro := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Course name").
				Placeholder("Calculus I").
				Value(&courseName).
				Validate(requireValue("course name")),
			huh.NewInput().
				Title("Days until the exam").
				Description("Leave empty to let the scheduler decide").
				Value(&daysStr).
				Validate(validatePositiveInt),
		),
	).WithTheme(examplanHuhTheme()).WithShowHelp(false)

	if err := intro.Run(); err != nil {
		return nil, 0, fmt.Errorf("wizard aborted: %w", err)
	}

	topics := &domain.TopicList{CourseName: courseName}
	for {
		ch, err := wizardChapter(len(topics.Chapters) + 1)
		if err != nil {
			return nil, 0, err
		}
		topics.Chapters = append(topics.Chapters, ch)
		topics.TotalPages += ch.PageCount

		var more bool
		cont := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add another chapter?").
					Affirmative("Yes").
					Negative("No").
					Value(&more),
			),
		).WithTheme(examplanHuhTheme()).WithShowHelp(false)
		if err := cont.Run(); err != nil {
			return nil, 0, fmt.Errorf("wizard aborted: %w", err)
		}
		if !more {
			break
		}
	}

	return topics, parsePositiveInt(daysStr, 0), nil
}

// wizardChapter collects one chapter: name, page count, complexity grade.
func wizardChapter(seq int) (domain.Chapter, error) {
	var name, pagesStr, grade string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Chapter %d name", seq)).
				Value(&name).
				Validate(requireValue("chapter name")),
			huh.NewInput().
				Title("Page count").
				Placeholder("40").
				Value(&pagesStr).
				Validate(validatePositiveInt),
			huh.NewSelect[string]().
				Title("Complexity").
				Options(
					huh.NewOption("Low — mostly reading", string(domain.ComplexityLow)),
					huh.NewOption("Medium — standard coursework", string(domain.ComplexityMedium)),
					huh.NewOption("High — dense or proof-heavy", string(domain.ComplexityHigh)),
				).
				Value(&grade),
		),
	).WithTheme(examplanHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return domain.Chapter{}, fmt.Errorf("wizard aborted: %w", err)
	}

	return domain.Chapter{
		Name:                name,
		PageCount:           parsePositiveInt(pagesStr, 40),
		EstimatedComplexity: domain.ParseComplexity(grade),
	}, nil
}

// requireValue rejects empty input with a named message.
func requireValue(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// parsePositiveInt parses s as a positive integer, returning fallback if s
// is empty, non-numeric, or non-positive. The huh forms have already
// validated the input, so this is a safe conversion.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
