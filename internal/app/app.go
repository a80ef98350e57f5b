// Package app hosts the full-screen terminal UI.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/linuxplus/internal/engine"
	"github.com/abhisek/linuxplus/internal/router"
	"github.com/abhisek/linuxplus/internal/screen"
	"github.com/abhisek/linuxplus/internal/screens/home"
	"github.com/abhisek/linuxplus/internal/screens/welcome"
	"github.com/abhisek/linuxplus/internal/ui/layout"
)

// Options configure Run.
type Options struct {
	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc    engine.Service
	router *router.Router
	logger *zap.Logger
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(svc engine.Service, logger *zap.Logger) AppModel {
	tagline := fmt.Sprintf("%d questions in %d categories",
		svc.QuestionCount(""), len(svc.Categories()))
	start := welcome.New(func() screen.Screen { return home.New(svc) }, tagline)
	return AppModel{
		svc:    svc,
		router: router.New(start),
		logger: logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.logger.Debug("interrupted", zap.String("screen", m.activeTitle()))
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) activeTitle() string {
	if active := m.router.Active(); active != nil {
		return active.Title()
	}
	return ""
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the whole terminal: header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	status := fmt.Sprintf("Review %d", m.svc.ReviewCount())
	header := layout.RenderHeader(m.activeTitle(), status, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if kp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(svc engine.Service, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("tui started")
	p := tea.NewProgram(newAppModel(svc, logger))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	logger.Info("tui stopped")
	return nil
}
