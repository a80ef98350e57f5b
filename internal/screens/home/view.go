package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/ui/components"
	"github.com/abhisek/linuxplus/internal/ui/theme"
)

const titleFull = ` ╦  ╦╔╗╔╦ ╦═╗ ╦  ╔═╗ ╦ ╦╦╔═╗
 ║  ║║║║║ ║╔╩╦╝  ║═╬╗║ ║║╔═╝
 ╩═╝╩╝╚╝╚═╝╩ ╚═  ╚═╝╚╚═╝╩╚═╝`

const titleCompact = "L I N U X +   Q U I Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(text))
}

// renderStatsBar renders the dashboard numbers in a bordered box matching
// content width.
func renderStatsBar(st engine.Statistics, cw int, compact bool) string {
	answeredStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	accuracyStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	reviewStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	accuracy := "-"
	if st.TotalAttempts > 0 {
		accuracy = fmt.Sprintf("%.0f%%", st.Accuracy*100)
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			answeredStyle.Render(fmt.Sprintf("%d/%d", st.QuestionsSeen, st.BankSize)),
			accuracyStyle.Render(accuracy),
			reviewText(st.ReviewCount, true, reviewStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			answeredStyle.Render(fmt.Sprintf("%d/%d SEEN", st.QuestionsSeen, st.BankSize)),
			accuracyStyle.Render(accuracy+" ACCURACY"),
			reviewText(st.ReviewCount, false, reviewStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func reviewText(n int, compact bool, active, dim lipgloss.Style) string {
	if n == 0 {
		if compact {
			return dim.Render("✓0")
		}
		return dim.Render("NOTHING TO REVIEW")
	}
	if compact {
		return active.Render(fmt.Sprintf("↻%d", n))
	}
	return active.Render(fmt.Sprintf("%d TO REVIEW", n))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderMenu renders each menu item as a fixed-width button, or as plain
// lines when the terminal is short.
func renderMenu(m components.Menu, cw int, compact bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Accent).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Padding(0, 1)


	if !compact {
		selectedBtn = selectedBtn.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Accent)
		normalBtn = normalBtn.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	}

	var buttons []string
	for i, item := range m.Items {
		label := fmt.Sprintf("%d %s", i+1, item.Label)
		if i == m.Selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

func renderStatus(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(msg)
}
