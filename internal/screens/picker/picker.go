// Package picker lets the user choose a category before a quiz starts.
package picker

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/router"
	"github.com/abhisek/linuxplus/internal/screen"
	sessionscreen "github.com/abhisek/linuxplus/internal/screens/session"
	sess "github.com/abhisek/linuxplus/internal/session"
	"github.com/abhisek/linuxplus/internal/ui/components"
	"github.com/abhisek/linuxplus/internal/ui/layout"
	"github.com/abhisek/linuxplus/internal/ui/theme"
)

const allLabel = "All categories"

type entry struct {
	label    string
	category string // empty for all categories
	count    int
}

// PickerScreen lists the categories with their question counts.
type PickerScreen struct {
	svc      engine.Service
	mode     sess.Mode
	entries  []entry
	filter   components.FilterInput
	selected int
	errMsg   string
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker that starts a session in the given mode.
func New(svc engine.Service, mode sess.Mode) *PickerScreen {
	entries := []entry{{label: allLabel, count: svc.QuestionCount("")}}
	for _, c := range svc.Categories() {
		entries = append(entries, entry{label: c, category: c, count: svc.QuestionCount(c)})
	}
	return &PickerScreen{
		svc:     svc,
		mode:    mode,
		entries: entries,
		filter:  components.NewFilterInput("type to filter", 40),
	}
}

func (p *PickerScreen) Init() tea.Cmd {
	return p.filter.Focus()
}

func (p *PickerScreen) Title() string {
	if p.mode == sess.ModeVerify {
		return "Verify Mode"
	}
	return "Choose Category"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// visible returns the entries matching the filter text.
func (p *PickerScreen) visible() []entry {
	if p.filter.Query() == "" {
		return p.entries
	}
	var out []entry
	for _, e := range p.entries {
		if p.filter.Matches(e.label) {
			out = append(out, e)
		}
	}
	return out
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		return p, cmd
	}

	switch kmsg.String() {
	case "up":
		if p.selected > 0 {
			p.selected--
		}
		return p, nil
	case "down":
		if p.selected < len(p.visible())-1 {
			p.selected++
		}
		return p, nil
	case "enter":
		return p, p.start()
	}

	p.errMsg = ""
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if n := len(p.visible()); p.selected >= n {
		p.selected = max(n-1, 0)
	}
	return p, cmd
}

// start begins a session on the selected entry and replaces the picker
// with the quiz.
func (p *PickerScreen) start() tea.Cmd {
	vis := p.visible()
	if len(vis) == 0 {
		p.errMsg = "No category matches the filter."
		return nil
	}
	e := vis[p.selected]
	s, err := p.svc.StartSession(sess.Options{Mode: p.mode, Category: e.category})
	if err != nil {
		if errors.Is(err, sess.ErrNoQuestions) {
			p.errMsg = fmt.Sprintf("%s has no questions.", e.label)
		} else {
			p.errMsg = err.Error()
		}
		return nil
	}
	next := sessionscreen.New(s)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (p *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	heading := "Pick a category"
	if p.mode == sess.ModeVerify {
		heading = "Pick a category to verify"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(heading))
	b.WriteString("\n\n")
	b.WriteString(p.filter.View())
	b.WriteString("\n\n")

	vis := p.visible()
	if len(vis) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("No matches"))
	}
	for i, e := range vis {
		count := fmt.Sprintf("%d", e.count)
		label := e.label
		pad := max(cw-8-lipgloss.Width(label)-len(count), 1)
		line := label + strings.Repeat(" ", pad) + count

		if i == p.selected {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    " + line))
		}
		b.WriteString("\n")
	}

	if p.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(p.errMsg))
	}

	return components.Frame(components.Card(b.String(), cw), width, height)
}
