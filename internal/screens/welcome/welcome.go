package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edustream/internal/router"
	"github.com/abhisek/edustream/internal/screen"
	"github.com/abhisek/edustream/internal/studio"
	"github.com/abhisek/edustream/internal/ui/components"
	"github.com/abhisek/edustream/internal/ui/layout"
	"github.com/abhisek/edustream/internal/ui/theme"
)

const (
	tickInterval   = 100 * time.Millisecond
	taglineHold    = 2500 * time.Millisecond
	nameCharLimit  = 40
	nameLabelWidth = 8
)

// NameRequiredMessage is shown when the learner submits a blank name.
const NameRequiredMessage = "Please tell us your name to continue."

// taglines rotate under the banner.
var taglines = []string{
	"Personalised learning paths, built for you.",
	"From AP Biology to chess openings.",
	"Plan it. Track it. Ask your tutor.",
}

type tickMsg time.Time

// WelcomeScreen greets the learner and asks for a display name before
// moving on to the planner.
type WelcomeScreen struct {
	state       *studio.State
	nextFactory func() screen.Screen
	input       components.TextInput
	elapsed     time.Duration
	errMsg      string
	done        bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)
var _ screen.InputCapturer = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that logs the learner into state and then
// replaces itself with the screen produced by nextFactory.
func New(state *studio.State, nextFactory func() screen.Screen) *WelcomeScreen {
	input := components.NewTextInput("Name", "Your name", nameCharLimit)
	input.SetValue(state.User)
	return &WelcomeScreen{
		state:       state,
		nextFactory: nextFactory,
		input:       input,
	}
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) CapturesInput() bool { return true }

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(w.input.Focus(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.done {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return w, w.submit()
		}
		w.errMsg = ""
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) submit() tea.Cmd {
	if w.done {
		return nil
	}
	name := strings.TrimSpace(w.input.Value())
	if name == "" {
		w.errMsg = NameRequiredMessage
		return nil
	}
	w.done = true
	w.state.Login(name)
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) tagline() string {
	i := int(w.elapsed/taglineHold) % len(taglines)
	return taglines[i]
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.tagline()),
		"",
		"",
		theme.Card.Width(min(width-4, 52)).Render(w.input.View(nameLabelWidth)),
	}

	if w.errMsg != "" {
		sections = append(sections, "", theme.Invalid.Render(w.errMsg))
	} else {
		sections = append(sections, "", theme.Hint.Render("press Enter to start planning"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
