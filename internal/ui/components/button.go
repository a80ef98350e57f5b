package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linuxplus/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ConfirmMsg is emitted when a Confirm prompt is answered.
type ConfirmMsg struct {
	ID  string
	Yes bool
}

// Confirm is a yes/no prompt built from two buttons. Y and N answer
// directly; arrows or Tab move between the buttons and Enter presses the
// highlighted one. The default is No.
type Confirm struct {
	ID       string
	Question string
	Detail   string
	yes      Button
	no       Button
}

// NewConfirm creates a confirmation prompt. Its answer arrives as a
// ConfirmMsg carrying id.
func NewConfirm(id, question, detail, yesLabel, noLabel string) Confirm {
	return Confirm{
		ID:       id,
		Question: question,
		Detail:   detail,
		yes:      NewButton(yesLabel, false, answer(id, true)),
		no:       NewButton(noLabel, true, answer(id, false)),
	}
}

func answer(id string, yes bool) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return ConfirmMsg{ID: id, Yes: yes} }
	}
}

// Update handles keyboard input.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "y", "Y":
		return c, c.yes.OnPress()
	case "n", "N", "esc":
		return c, c.no.OnPress()
	case "left", "right", "h", "l", "tab", "shift+tab":
		c.yes.Active, c.no.Active = c.no.Active, c.yes.Active
		return c, nil
	}

	var cmd tea.Cmd
	if c.yes.Active {
		c.yes, cmd = c.yes.Update(msg)
	} else {
		c.no, cmd = c.no.Update(msg)
	}
	return c, cmd
}

// View renders the prompt centered in width.
func (c Confirm) View(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	s := center.Foreground(theme.Text).Bold(true).Render(c.Question) + "\n"
	if c.Detail != "" {
		s += center.Foreground(theme.TextDim).Render(c.Detail) + "\n"
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, c.yes.View(), "  ", c.no.View())
	s += "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons)
	return s
}
