package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bxtheory/examplan/internal/cli/formatter"
	"github.com/bxtheory/examplan/internal/contract"
)

// reviewKeyMap binds the review screen keys.
type reviewKeyMap struct {
	Accept  key.Binding
	Discard key.Binding
}

var reviewKeys = reviewKeyMap{
	Accept: key.NewBinding(
		key.WithKeys("a", "enter"),
		key.WithHelp("a/enter", "accept & save"),
	),
	Discard: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q/esc", "discard"),
	),
}

// reviewModel shows a drafted schedule in a scrollable viewport so the user
// can read it before anything is written to disk.
type reviewModel struct {
	resp     *contract.PlanResponse
	vp       viewport.Model
	width    int
	height   int
	accepted bool
	done     bool
}

func newReviewModel(resp *contract.PlanResponse) reviewModel {
	vp := viewport.New(0, 0)
	vp.SetContent(reviewContent(resp))
	return reviewModel{resp: resp, vp: vp}
}

// reviewContent renders what the user is deciding about: validation state,
// summary, then the schedule itself.
func reviewContent(resp *contract.PlanResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", formatter.ValidationBadge(resp.Validation.OK), formatter.SourceBadge(resp.Source))
	b.WriteString(formatter.FormatSummary(resp.Summary))
	if report := formatter.FormatValidation(resp.Validation); report != "" {
		b.WriteString("\n")
		b.WriteString(report)
	}
	b.WriteString("\n")
	b.WriteString(resp.Markdown)
	return b.String()
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-4, 1) // header + status bar
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, reviewKeys.Accept):
			m.accepted = true
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, reviewKeys.Discard):
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m reviewModel) View() string {
	if m.done {
		return ""
	}

	title := formatter.StyleHeader.Render("REVIEW SCHEDULE") +
		"  " + formatter.Dim(m.resp.Topics.CourseName)
	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))

	hints := []string{
		formatter.Dim(reviewKeys.Accept.Help().Key + ": " + reviewKeys.Accept.Help().Desc),
		formatter.Dim(reviewKeys.Discard.Help().Key + ": " + reviewKeys.Discard.Help().Desc),
		formatter.Dim("↑↓ pgup/pgdn: scroll"),
	}

	return title + "\n" + sep + "\n" + m.vp.View() + "\n" + sep + "\n" + strings.Join(hints, "  ")
}

// reviewPlan runs the review TUI and reports whether the user accepted.
func reviewPlan(resp *contract.PlanResponse) (bool, error) {
	model := newReviewModel(resp)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("review screen failed: %w", err)
	}
	if m, ok := final.(reviewModel); ok {
		return m.accepted, nil
	}
	return false, nil
}
