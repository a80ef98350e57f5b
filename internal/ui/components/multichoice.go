package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linuxplus/internal/questionbank"
	"github.com/abhisek/linuxplus/internal/ui/theme"
)

// HiddenAnswer is passed as correctIndex when the answer must not be shown
// after submission.
const HiddenAnswer = -1

// MultiChoice is a multiple-choice selector component. Options can be
// picked with the arrows and Enter, or directly by number or letter.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Selected:     0,
		Submitted:    false,
		ChosenIndex:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		m.submit(m.Selected)
		return m, nil
	}

	if i, ok := m.optionForKey(key); ok {
		m.Selected = i
		m.submit(i)
	}
	return m, nil
}

// optionForKey maps "1".."9" and option letters to an option index.
func (m MultiChoice) optionForKey(key string) (int, bool) {
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= len(m.Options) {
			return n - 1, true
		}
		return 0, false
	}
	if i := questionbank.LetterIndex(key); i >= 0 && i < len(m.Options) {
		return i, true
	}
	return 0, false
}

func (m *MultiChoice) submit(i int) {
	m.Submitted = true
	m.ChosenIndex = i
}

// View renders the multiple-choice component in the given width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width)
	b.WriteString(questionStyle.Render(m.Question))
	b.WriteString("\n\n")

	reveal := m.Submitted && m.CorrectIndex != HiddenAnswer
	optStyle := lipgloss.NewStyle().Width(width)

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, questionbank.OptionLetter(i), opt)

		var style lipgloss.Style
		switch {
		case reveal && i == m.CorrectIndex:
			style = optStyle.Foreground(theme.Success).Bold(true)
		case m.Submitted && i == m.ChosenIndex:
			if reveal {
				style = optStyle.Foreground(theme.Error).Bold(true)
			} else {
				style = optStyle.Foreground(theme.Primary).Bold(true)
			}
		case m.Submitted:
			style = optStyle.Foreground(theme.TextDim)
		case i == m.Selected:
			style = optStyle.Foreground(theme.Primary).Bold(true)
		default:
			style = optStyle.Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
