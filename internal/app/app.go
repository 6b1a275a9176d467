package app

import (
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/jobs"
	"github.com/abhisek/edustream/internal/router"
	"github.com/abhisek/edustream/internal/screen"
	"github.com/abhisek/edustream/internal/screens/dashboard"
	"github.com/abhisek/edustream/internal/screens/planner"
	"github.com/abhisek/edustream/internal/screens/welcome"
	"github.com/abhisek/edustream/internal/studio"
	"github.com/abhisek/edustream/internal/tutor"
	"github.com/abhisek/edustream/internal/ui/layout"
)

// Options holds the services the TUI runs against.
type Options struct {
	Generator curriculum.Generator
	Chatter   tutor.Chatter
	Logger    *zap.Logger
}

// AppModel is the root Bubble Tea model. It owns the view state and applies
// request results to it, whichever screen is active when they arrive.
type AppModel struct {
	router *router.Router
	state  *studio.State
	run    jobs.Runner
	logger *zap.Logger
	width  int
	height int
}

// newAppModel creates a new AppModel with the welcome screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := AppModel{
		state:  studio.New(),
		run:    jobs.Runner{Generator: opts.Generator, Chatter: opts.Chatter},
		logger: logger,
	}
	m.router = router.New(m.welcomeScreen())
	return m
}

func (m AppModel) welcomeScreen() screen.Screen {
	return welcome.New(m.state, func() screen.Screen {
		return planner.New(m.state, m.run)
	})
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case jobs.GenerationDoneMsg:
		return m, m.applyGeneration(msg)

	case jobs.ChatReplyMsg:
		m.applyChat(msg)
		return m, nil

	case dashboard.LogoutMsg:
		m.logger.Info("learner logged out")
		m.state.Logout()
		return m, m.router.Reset(m.welcomeScreen())

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !m.capturesInput() {
				if m.router.Depth() > 1 {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
				return m, nil
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) capturesInput() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturesInput()
}

func (m AppModel) applyGeneration(msg jobs.GenerationDoneMsg) tea.Cmd {
	if !m.state.ApplyGeneration(msg.Ticket, msg.Path, msg.Err) {
		m.logger.Debug("discarded stale learning path result", zap.Uint64("seq", msg.Ticket.Seq))
		return nil
	}
	if msg.Err != nil {
		var verr *curriculum.ValidationError
		if !errors.As(msg.Err, &verr) {
			m.logger.Warn("learning path request failed", zap.Error(msg.Err))
		}
		return nil
	}
	m.logger.Info("learning path ready",
		zap.String("topic", msg.Path.Topic),
		zap.Int("modules", len(msg.Path.Modules)),
	)
	return m.router.Push(dashboard.New(m.state, m.run))
}

func (m AppModel) applyChat(msg jobs.ChatReplyMsg) {
	if msg.Panel == nil || !msg.Panel.Resolve(msg.Ticket, msg.Reply, msg.Err) {
		m.logger.Debug("discarded stale tutor reply", zap.Uint64("seq", msg.Ticket.Seq))
		return
	}
	if msg.Err != nil {
		m.logger.Warn("tutor request failed", zap.Error(msg.Err))
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, layout.HeaderInfo{
		User:     m.state.User,
		HasPath:  m.state.HasPath(),
		Progress: m.state.Progress(),
	}, m.width)

	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
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

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
