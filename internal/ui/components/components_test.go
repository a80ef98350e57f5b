package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func testMenu(hits *[]string) Menu {
	item := func(label string) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd {
			*hits = append(*hits, label)
			return nil
		}}
	}
	return NewMenu([]MenuItem{item("a"), item("b"), item("c")})
}

func TestMenuWraps(t *testing.T) {
	var hits []string
	m := testMenu(&hits)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 2 {
		t.Errorf("up from top: Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Errorf("down from bottom: Selected = %d, want 0", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	if m.Selected != 1 {
		t.Errorf("j: Selected = %d, want 1", m.Selected)
	}
}

func TestMenuEnterActivates(t *testing.T) {
	var hits []string
	m := testMenu(&hits)
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(hits) != 1 || hits[0] != "b" {
		t.Errorf("hits = %v, want [b]", hits)
	}
}

func TestMenuDigitShortcut(t *testing.T) {
	var hits []string
	m := testMenu(&hits)

	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
	if len(hits) != 1 || hits[0] != "c" {
		t.Errorf("hits = %v, want [c]", hits)
	}

	// out of range digits are ignored
	m, _ = m.Update(tea.KeyPressMsg{Code: '7', Text: "7"})
	m, _ = m.Update(tea.KeyPressMsg{Code: '0', Text: "0"})
	if m.Selected != 2 || len(hits) != 1 {
		t.Errorf("Selected = %d hits = %v after out of range digits", m.Selected, hits)
	}
}

func TestMenuEmpty(t *testing.T) {
	m := NewMenu(nil)
	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if cmd != nil || m.Selected != 0 {
		t.Error("empty menu should ignore keys")
	}
}

func TestAccuracyBar(t *testing.T) {
	b := NewAccuracyBar("Security", 3, 4, 40)
	if got := b.Accuracy(); got != 0.75 {
		t.Errorf("Accuracy() = %v, want 0.75", got)
	}
	v := b.View()
	if !strings.Contains(v, "Security") || !strings.Contains(v, "75%") {
		t.Errorf("View() = %q, want label and percent", v)
	}

	empty := NewAccuracyBar("Networking", 0, 0, 40)
	if empty.Accuracy() != 0 {
		t.Error("no attempts should read as zero accuracy")
	}
	if v := empty.View(); strings.Contains(v, "%") || !strings.Contains(v, "-") {
		t.Errorf("View() = %q, want a dash and no percent", v)
	}
}

func TestFilterInputMatches(t *testing.T) {
	f := NewFilterInput("filter", 40)
	if !f.Matches("Anything") {
		t.Error("empty query should match everything")
	}

	f.Model.SetValue("  SEC ")
	if f.Query() != "sec" {
		t.Errorf("Query() = %q, want %q", f.Query(), "sec")
	}
	if !f.Matches("Security") {
		t.Error("expected case-insensitive match")
	}
	if f.Matches("Networking") {
		t.Error("unexpected match")
	}
}
