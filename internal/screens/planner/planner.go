package planner

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/jobs"
	"github.com/abhisek/edustream/internal/profile"
	"github.com/abhisek/edustream/internal/router"
	"github.com/abhisek/edustream/internal/screen"
	"github.com/abhisek/edustream/internal/screens/dashboard"
	"github.com/abhisek/edustream/internal/studio"
	"github.com/abhisek/edustream/internal/ui/components"
	"github.com/abhisek/edustream/internal/ui/layout"
	"github.com/abhisek/edustream/internal/ui/theme"
)

type field int

const (
	fieldGoal field = iota
	fieldAgeGroup
	fieldLevel
	fieldStyle
	fieldHours
	fieldInterests
	fieldPrior
	fieldSubmit
	fieldCount
)

const (
	labelWidth     = 14
	goalCharLimit  = 120
	priorCharLimit = 300
)

// PlannerScreen collects the learner profile and starts path generation.
type PlannerScreen struct {
	state    *studio.State
	run      jobs.Runner
	focus    field
	goal     components.TextInput
	interest components.TextInput
	prior    components.TextInput
	spin     spinner.Model
}

var _ screen.Screen = (*PlannerScreen)(nil)
var _ screen.KeyHintProvider = (*PlannerScreen)(nil)
var _ screen.InputCapturer = (*PlannerScreen)(nil)

// New creates a planner over state's form. Text fields are pre-filled from
// the form so returning to the planner keeps what was typed.
func New(state *studio.State, run jobs.Runner) *PlannerScreen {
	p := state.Form.Profile()
	s := &PlannerScreen{
		state:    state,
		run:      run,
		goal:     components.NewTextInput("Goal", "e.g. AP Biology, Conversational Spanish", goalCharLimit),
		interest: components.NewTextInput("Interests", "type one and press Enter", 0),
		prior:    components.NewTextInput("Prior", "what you already know (optional)", priorCharLimit),
		spin:     newSpinner(),
	}
	s.goal.SetValue(p.Goal)
	s.prior.SetValue(p.PriorKnowledge)
	return s
}

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
	)
}

func (s *PlannerScreen) Init() tea.Cmd {
	return s.setFocus(fieldGoal)
}

func (s *PlannerScreen) Title() string {
	return "Plan a Learning Path"
}

func (s *PlannerScreen) CapturesInput() bool { return true }

func (s *PlannerScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Ctrl+S", Description: "Generate"},
	}
	if s.state.HasPath() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+D", Description: "Current path"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *PlannerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !s.state.Loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s, s.updateInput(msg)
}

func (s *PlannerScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return s, s.submit()
	case "ctrl+d":
		return s, s.showPath()
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "left":
		if s.adjust(-1) {
			return s, nil
		}
	case "right":
		if s.adjust(1) {
			return s, nil
		}
	case "enter":
		switch s.focus {
		case fieldSubmit:
			return s, s.submit()
		case fieldInterests:
			if s.state.Form.AddInterest(s.interest.Value()) {
				s.interest.Reset()
			}
			return s, nil
		default:
			return s, s.setFocus(s.focus + 1)
		}
	case "backspace":
		if s.focus == fieldInterests && s.interest.Value() == "" {
			s.state.Form.RemoveLastInterest()
			return s, nil
		}
	}

	return s, s.updateInput(msg)
}

// adjust cycles a selector field. Returns false when the focused field is
// not a selector.
func (s *PlannerScreen) adjust(dir int) bool {
	f := s.state.Form
	p := f.Profile()
	switch s.focus {
	case fieldAgeGroup:
		f.SetAgeGroup(profile.Cycle(curriculum.AgeGroups, p.AgeGroup, dir))
	case fieldLevel:
		f.SetLevel(profile.Cycle(curriculum.Levels, p.CurrentLevel, dir))
	case fieldStyle:
		f.SetLearningStyle(profile.Cycle(curriculum.LearningStyles, p.LearningStyle, dir))
	case fieldHours:
		f.SetHours(p.AvailableHoursPerWeek + dir)
	default:
		return false
	}
	return true
}

// updateInput forwards msg to the focused text field and mirrors its value
// into the form.
func (s *PlannerScreen) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focus {
	case fieldGoal:
		s.goal, cmd = s.goal.Update(msg)
		s.state.Form.SetGoal(s.goal.Value())
	case fieldInterests:
		s.interest, cmd = s.interest.Update(msg)
	case fieldPrior:
		s.prior, cmd = s.prior.Update(msg)
		s.state.Form.SetPriorKnowledge(s.prior.Value())
	}
	return cmd
}

func (s *PlannerScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.goal.Blur()
	s.interest.Blur()
	s.prior.Blur()
	switch f {
	case fieldGoal:
		return s.goal.Focus()
	case fieldInterests:
		return s.interest.Focus()
	case fieldPrior:
		return s.prior.Focus()
	}
	return nil
}

func (s *PlannerScreen) submit() tea.Cmd {
	if s.state.Loading {
		return nil
	}
	ticket, err := s.state.SubmitProfile()
	if err != nil {
		return s.setFocus(fieldGoal)
	}
	return tea.Batch(s.run.Generate(ticket), s.spin.Tick)
}

func (s *PlannerScreen) showPath() tea.Cmd {
	if !s.state.HasPath() || s.state.Loading {
		return nil
	}
	next := dashboard.New(s.state, s.run)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (s *PlannerScreen) View(width, height int) string {
	p := s.state.Form.Profile()
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Design your learning path") + "\n")
	if s.state.User != "" {
		b.WriteString(dim.Render("Planning for "+s.state.User) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(s.goal.View(labelWidth) + "\n")
	b.WriteString(components.Choice{Label: "Age group", Value: p.AgeGroup, Focused: s.focus == fieldAgeGroup}.View(labelWidth) + "\n")
	b.WriteString(components.Choice{Label: "Level", Value: string(p.CurrentLevel), Focused: s.focus == fieldLevel}.View(labelWidth) + "\n")
	b.WriteString(components.Choice{Label: "Style", Value: string(p.LearningStyle), Focused: s.focus == fieldStyle}.View(labelWidth) + "\n")
	b.WriteString(s.renderHours(p.AvailableHoursPerWeek) + "\n")
	b.WriteString(s.interest.View(labelWidth) + "\n")
	b.WriteString(strings.Repeat(" ", labelWidth+2) + renderInterests(p.Interests) + "\n")
	b.WriteString(s.prior.View(labelWidth) + "\n\n")

	button := components.NewButton("Generate my path")
	button.Focused = s.focus == fieldSubmit
	button.Disabled = s.state.Loading
	b.WriteString(strings.Repeat(" ", labelWidth+2) + button.View() + "\n\n")

	switch {
	case s.state.Loading:
		b.WriteString(s.spin.View() + lipgloss.NewStyle().Foreground(theme.Accent).Render(
			" Building your personalised path..."))
	case s.state.Error != "":
		b.WriteString(theme.Banner.Render(s.state.Error))
	}

	form := lipgloss.NewStyle().Width(min(width-4, 96)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+form)
}

func (s *PlannerScreen) renderHours(hours int) string {
	focused := s.focus == fieldHours
	value := fmt.Sprintf("%d h/week", hours)
	bar := components.NewProgressBar("", (hours-profile.MinHours)*100/(profile.MaxHours-profile.MinHours), false, 24).View()
	return components.Choice{Label: "Hours", Value: value, Focused: focused}.View(labelWidth) + "  " + bar
}

func renderInterests(interests []string) string {
	if len(interests) == 0 {
		return theme.Hint.Render("no interests yet")
	}
	tag := lipgloss.NewStyle().Foreground(theme.Secondary)
	parts := make([]string, len(interests))
	for i, in := range interests {
		parts[i] = tag.Render("#" + in)
	}
	return strings.Join(parts, " ")
}
