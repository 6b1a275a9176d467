package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edustream/internal/router"
	"github.com/abhisek/edustream/internal/screen"
	"github.com/abhisek/edustream/internal/studio"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "planner" }
func (s *stubScreen) Title() string                           { return "Planner" }

func newTestWelcome() (*WelcomeScreen, *studio.State, *int) {
	state := studio.New()
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(state, factory), state, &callCount
}

func typeText(w *WelcomeScreen, text string) {
	for _, r := range text {
		w.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func pressEnter(w *WelcomeScreen) tea.Cmd {
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestBlankNameShowsError(t *testing.T) {
	w, state, callCount := newTestWelcome()
	w.Init()
	typeText(w, "   ")

	if cmd := pressEnter(w); cmd != nil {
		t.Fatal("blank name should not transition")
	}
	if w.errMsg != NameRequiredMessage {
		t.Errorf("expected %q, got %q", NameRequiredMessage, w.errMsg)
	}
	if state.User != "" {
		t.Errorf("expected no login, got %q", state.User)
	}
	if *callCount != 0 {
		t.Errorf("factory should not be called, got %d", *callCount)
	}
	if !strings.Contains(w.View(80, 24), NameRequiredMessage) {
		t.Error("error should be rendered")
	}
}

func TestEnterLogsInAndReplaces(t *testing.T) {
	w, state, callCount := newTestWelcome()
	w.Init()
	typeText(w, "Ada")

	cmd := pressEnter(w)
	if cmd == nil {
		t.Fatal("expected transition command")
	}
	msg := cmd()
	if _, ok := msg.(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if state.User != "Ada" {
		t.Errorf("expected user Ada, got %q", state.User)
	}
	if got := state.Form.Profile().Name; got != "Ada" {
		t.Errorf("expected form name Ada, got %q", got)
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestDoubleEnterTransitionsOnce(t *testing.T) {
	w, _, callCount := newTestWelcome()
	w.Init()
	typeText(w, "Ada")

	pressEnter(w)
	if cmd := pressEnter(w); cmd != nil {
		t.Error("second enter should be ignored")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestTypingClearsError(t *testing.T) {
	w, _, _ := newTestWelcome()
	w.Init()
	pressEnter(w)
	if w.errMsg == "" {
		t.Fatal("expected error after blank submit")
	}
	typeText(w, "A")
	if w.errMsg != "" {
		t.Errorf("expected error cleared, got %q", w.errMsg)
	}
}

func TestTaglineRotates(t *testing.T) {
	w, _, _ := newTestWelcome()
	first := w.tagline()
	ticks := int(taglineHold / tickInterval)
	for i := 0; i < ticks; i++ {
		w.Update(tickMsg(time.Now()))
	}
	if w.tagline() == first {
		t.Error("expected tagline to change after hold period")
	}
}

func TestBannerCompactFallback(t *testing.T) {
	if !strings.Contains(RenderBanner(20), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
	if strings.Contains(RenderBanner(80), bannerCompact) {
		t.Error("wide terminals should get the full banner")
	}
}
