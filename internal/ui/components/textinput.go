package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// FilterInput is a single-line, always-focused query box used to narrow
// a list by case-insensitive substring.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates a focused filter accepting at most limit runes.
func NewFilterInput(placeholder string, limit int) FilterInput {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return FilterInput{Model: ti}
}

// Focus returns the cursor blink command.
func (f FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

func (f FilterInput) View() string {
	return f.Model.View()
}

// Query returns the trimmed, lowercased filter text.
func (f FilterInput) Query() string {
	return strings.ToLower(strings.TrimSpace(f.Model.Value()))
}

// Matches reports whether label contains the query. An empty query
// matches everything.
func (f FilterInput) Matches(label string) bool {
	q := f.Query()
	return q == "" || strings.Contains(strings.ToLower(label), q)
}
