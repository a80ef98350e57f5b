package components

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu. Action runs on enter or when the
// item's number is pressed.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu tracks the highlighted entry of a vertical list. Rendering is left
// to the screen that owns it.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first item highlighted.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the cursor with up/down (or k/j), wrapping at both ends.
// Digits 1-9 jump to and activate the matching item.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "enter":
		return m, m.activate()
	default:
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(m.Items) || n > 9 {
			return m, nil
		}
		m.Selected = n - 1
		return m, m.activate()
	}
	return m, nil
}

func (m Menu) activate() tea.Cmd {
	if item := m.Items[m.Selected]; item.Action != nil {
		return item.Action()
	}
	return nil
}
