package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/jobs"
	"github.com/abhisek/edustream/internal/profile"
	"github.com/abhisek/edustream/internal/router"
	"github.com/abhisek/edustream/internal/screens/dashboard"
	"github.com/abhisek/edustream/internal/studio"
)

type spyGenerator struct {
	calls []curriculum.Profile
	err   error
}

func (g *spyGenerator) Generate(_ context.Context, p curriculum.Profile) (*curriculum.LearningPath, error) {
	g.calls = append(g.calls, p)
	if g.err != nil {
		return nil, &curriculum.GenerationError{Err: g.err}
	}
	return curriculum.SamplePath(p), nil
}

func newTestPlanner() (*PlannerScreen, *studio.State, *spyGenerator) {
	state := studio.New()
	state.Login("Ada")
	gen := &spyGenerator{}
	s := New(state, jobs.Runner{Generator: gen})
	s.Init()
	return s, state, gen
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func typeText(s *PlannerScreen, text string) {
	for _, r := range text {
		s.Update(key(r))
	}
}

func focusField(s *PlannerScreen, f field) {
	for s.focus != f {
		s.Update(special(tea.KeyTab))
	}
}

// collect runs cmd and any batched children, returning the messages that
// are not spinner ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
	case spinner.TickMsg:
	default:
		out = append(out, msg)
	}
	return out
}

func generationMsg(t *testing.T, cmd tea.Cmd) jobs.GenerationDoneMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if done, ok := msg.(jobs.GenerationDoneMsg); ok {
			return done
		}
	}
	t.Fatal("expected a GenerationDoneMsg")
	return jobs.GenerationDoneMsg{}
}

func TestTypingGoalUpdatesForm(t *testing.T) {
	s, state, _ := newTestPlanner()
	typeText(s, "AP Biology")

	if got := state.Form.Profile().Goal; got != "AP Biology" {
		t.Errorf("expected goal 'AP Biology', got %q", got)
	}
}

func TestSubmitWithoutGoalMakesNoRequest(t *testing.T) {
	s, state, gen := newTestPlanner()
	focusField(s, fieldSubmit)

	s.Update(special(tea.KeyEnter))

	if len(gen.calls) != 0 {
		t.Fatalf("expected no generation request, got %d", len(gen.calls))
	}
	if state.Error != curriculum.GoalRequiredMessage {
		t.Errorf("expected goal required error, got %q", state.Error)
	}
	if state.Loading {
		t.Error("should not be loading")
	}
	if s.focus != fieldGoal {
		t.Errorf("expected focus back on goal, got %d", s.focus)
	}
	if !strings.Contains(s.View(100, 40), curriculum.GoalRequiredMessage) {
		t.Error("expected inline error in view")
	}
}

func TestSubmitStartsGeneration(t *testing.T) {
	s, state, gen := newTestPlanner()
	typeText(s, "AP Biology")
	focusField(s, fieldLevel)
	s.Update(special(tea.KeyRight))

	_, cmd := s.Update(ctrl('s'))
	if !state.Loading {
		t.Fatal("expected loading after submit")
	}
	if !strings.Contains(s.View(100, 40), "Building your personalised path") {
		t.Error("expected loading indicator")
	}

	done := generationMsg(t, cmd)
	if len(gen.calls) != 1 {
		t.Fatalf("expected 1 request, got %d", len(gen.calls))
	}
	got := gen.calls[0]
	if got.Goal != "AP Biology" || got.CurrentLevel != curriculum.Intermediate || got.Name != "Ada" {
		t.Errorf("unexpected profile %+v", got)
	}
	if done.Err != nil || done.Path == nil {
		t.Fatalf("expected a path, got err %v", done.Err)
	}
}

func TestSubmitWhileLoadingIgnored(t *testing.T) {
	s, state, _ := newTestPlanner()
	typeText(s, "Chess")
	s.Update(ctrl('s'))
	if !state.Loading {
		t.Fatal("expected loading")
	}

	if _, cmd := s.Update(ctrl('s')); cmd != nil {
		t.Error("second submit while loading should be ignored")
	}
}

func TestSpinnerRunsOnlyWhileLoading(t *testing.T) {
	s, state, _ := newTestPlanner()
	if _, cmd := s.Update(s.spin.Tick()); cmd != nil {
		t.Fatal("spinner should not tick before a submit")
	}

	typeText(s, "Chess")
	_, cmd := s.Update(ctrl('s'))
	var started bool
	for _, c := range cmd().(tea.BatchMsg) {
		if _, ok := c().(spinner.TickMsg); ok {
			started = true
		}
	}
	if !started {
		t.Fatal("expected submit to start the spinner")
	}
	if _, cmd := s.Update(s.spin.Tick()); cmd == nil {
		t.Error("expected spinner to keep ticking while loading")
	}

	state.Reset()
	if _, cmd := s.Update(s.spin.Tick()); cmd != nil {
		t.Error("spinner should stop once loading ends")
	}
}

func TestFailedGenerationShowsBanner(t *testing.T) {
	s, state, gen := newTestPlanner()
	gen.err = context.DeadlineExceeded
	typeText(s, "10th Grade Physics")

	_, cmd := s.Update(ctrl('s'))
	done := generationMsg(t, cmd)
	if !errors.Is(done.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", done.Err)
	}
	state.ApplyGeneration(done.Ticket, done.Path, done.Err)

	view := s.View(100, 40)
	if !strings.Contains(view, curriculum.GenerationMessage) {
		t.Error("expected generation error banner")
	}
	if !strings.Contains(view, "10th Grade Physics") {
		t.Error("form should keep the goal")
	}
	if state.HasPath() {
		t.Error("no path should be set")
	}
}

func TestSelectorsCycle(t *testing.T) {
	s, state, _ := newTestPlanner()

	focusField(s, fieldStyle)
	s.Update(special(tea.KeyRight))
	want := profile.Cycle(curriculum.LearningStyles, curriculum.ReadingWriting, 1)
	if got := state.Form.Profile().LearningStyle; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	focusField(s, fieldAgeGroup)
	s.Update(special(tea.KeyLeft))
	want2 := profile.Cycle(curriculum.AgeGroups, profile.DefaultAgeGroup, -1)
	if got := state.Form.Profile().AgeGroup; got != want2 {
		t.Errorf("expected %q, got %q", want2, got)
	}
}

func TestHoursClamped(t *testing.T) {
	s, state, _ := newTestPlanner()
	focusField(s, fieldHours)

	for i := 0; i < 100; i++ {
		s.Update(special(tea.KeyLeft))
	}
	if got := state.Form.Profile().AvailableHoursPerWeek; got != profile.MinHours {
		t.Errorf("expected %d, got %d", profile.MinHours, got)
	}
	for i := 0; i < 100; i++ {
		s.Update(special(tea.KeyRight))
	}
	if got := state.Form.Profile().AvailableHoursPerWeek; got != profile.MaxHours {
		t.Errorf("expected %d, got %d", profile.MaxHours, got)
	}
}

func TestInterestsAddAndRemove(t *testing.T) {
	s, state, _ := newTestPlanner()
	focusField(s, fieldInterests)

	typeText(s, "space")
	s.Update(special(tea.KeyEnter))
	typeText(s, "music")
	s.Update(special(tea.KeyEnter))
	s.Update(special(tea.KeyEnter))

	got := state.Form.Profile().Interests
	if len(got) != 2 || got[0] != "space" || got[1] != "music" {
		t.Fatalf("unexpected interests %v", got)
	}
	if !strings.Contains(s.View(100, 40), "#music") {
		t.Error("expected interest tags in view")
	}

	s.Update(special(tea.KeyBackspace))
	if got := state.Form.Profile().Interests; len(got) != 1 {
		t.Errorf("expected one interest after backspace, got %v", got)
	}
}

func TestEnterAdvancesFocus(t *testing.T) {
	s, _, _ := newTestPlanner()
	s.Update(special(tea.KeyEnter))
	if s.focus != fieldAgeGroup {
		t.Errorf("expected focus on age group, got %d", s.focus)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.focus != fieldGoal {
		t.Errorf("expected focus back on goal, got %d", s.focus)
	}
}

func TestShowPathRequiresPath(t *testing.T) {
	s, state, _ := newTestPlanner()
	if _, cmd := s.Update(ctrl('d')); cmd != nil {
		t.Fatal("no path yet, ctrl+d should do nothing")
	}

	state.Form.SetGoal("Chess")
	tk, _ := state.SubmitProfile()
	state.ApplyGeneration(tk, curriculum.SamplePath(tk.Profile), nil)

	_, cmd := s.Update(ctrl('d'))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*dashboard.DashboardScreen); !ok {
		t.Errorf("expected dashboard, got %T", push.Screen)
	}
}

func TestNewPrefillsFromForm(t *testing.T) {
	state := studio.New()
	state.Form.SetGoal("Chess")
	state.Form.SetPriorKnowledge("knows the rules")

	s := New(state, jobs.Runner{})
	if s.goal.Value() != "Chess" || s.prior.Value() != "knows the rules" {
		t.Errorf("expected prefilled inputs, got %q / %q", s.goal.Value(), s.prior.Value())
	}
}
