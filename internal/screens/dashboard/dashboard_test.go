package dashboard

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/jobs"
	"github.com/abhisek/edustream/internal/router"
	"github.com/abhisek/edustream/internal/studio"
	"github.com/abhisek/edustream/internal/tutor"
)

type echoChatter struct{ calls int }

func (e *echoChatter) Chat(_ context.Context, message string, _ *curriculum.LearningPath) (string, error) {
	e.calls++
	return "You asked: " + message, nil
}

func newTestDashboard(t *testing.T) (*DashboardScreen, *studio.State, *echoChatter) {
	t.Helper()
	state := studio.New()
	state.Login("Ada")
	state.Form.SetGoal("AP Biology")
	tk, err := state.SubmitProfile()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !state.ApplyGeneration(tk, curriculum.SamplePath(tk.Profile), nil) {
		t.Fatal("expected generation to apply")
	}
	chatter := &echoChatter{}
	d := New(state, jobs.Runner{Chatter: chatter})
	d.Init()
	return d, state, chatter
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(d *DashboardScreen, text string) {
	for _, r := range text {
		d.Update(key(r))
	}
}

func TestInitialViewShowsPathAndZeroProgress(t *testing.T) {
	d, state, _ := newTestDashboard(t)

	view := d.View(120, 40)
	if !strings.Contains(view, "AP Biology") {
		t.Error("expected topic in view")
	}
	if !strings.Contains(view, "6 modules") {
		t.Error("expected module count in view")
	}
	if !strings.Contains(view, "0%") {
		t.Error("expected 0% progress")
	}
	if state.Progress() != 0 {
		t.Errorf("expected progress 0, got %d", state.Progress())
	}
}

func TestSpaceTogglesCurrentModule(t *testing.T) {
	d, state, _ := newTestDashboard(t)

	d.Update(special(tea.KeySpace))
	if !state.Tracker.IsDone("unit-1") {
		t.Fatal("expected unit-1 done")
	}
	if state.Progress() != 17 {
		t.Errorf("expected 17%%, got %d", state.Progress())
	}

	d.Update(special(tea.KeyDown))
	d.Update(key('x'))
	if !state.Tracker.IsDone("unit-2") {
		t.Error("expected unit-2 done")
	}

	d.Update(special(tea.KeyUp))
	d.Update(special(tea.KeySpace))
	if state.Tracker.IsDone("unit-1") {
		t.Error("expected unit-1 toggled back")
	}
	if state.Progress() != 17 {
		t.Errorf("expected 17%%, got %d", state.Progress())
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	d, _, _ := newTestDashboard(t)

	d.Update(special(tea.KeyUp))
	if d.cursor != 0 {
		t.Errorf("expected cursor 0, got %d", d.cursor)
	}
	for i := 0; i < 20; i++ {
		d.Update(key('j'))
	}
	if d.cursor != 5 {
		t.Errorf("expected cursor 5, got %d", d.cursor)
	}
}

func TestEnterOpensDetail(t *testing.T) {
	d, state, _ := newTestDashboard(t)
	d.Update(special(tea.KeyDown))

	_, cmd := d.Update(special(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	detail, ok := push.Screen.(*ModuleDetailScreen)
	if !ok {
		t.Fatalf("expected *ModuleDetailScreen, got %T", push.Screen)
	}
	if detail.id != "unit-2" {
		t.Errorf("expected unit-2, got %q", detail.id)
	}

	detail.Update(special(tea.KeySpace))
	if !state.Tracker.IsDone("unit-2") {
		t.Error("toggle in detail should update the shared tracker")
	}
	if !strings.Contains(detail.View(100, 40), "Completed") {
		t.Error("expected completed status in detail view")
	}
}

func TestNewPathResetsAndPops(t *testing.T) {
	d, state, _ := newTestDashboard(t)
	d.Update(special(tea.KeySpace))

	_, cmd := d.Update(key('n'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
	if state.HasPath() {
		t.Error("expected path cleared")
	}
	if state.Tracker.Len() != 0 {
		t.Error("expected completion cleared")
	}
	if state.Form.Profile().Goal != "AP Biology" {
		t.Error("form contents should be kept")
	}
}

func TestEditProfileKeepsPath(t *testing.T) {
	d, state, _ := newTestDashboard(t)

	_, cmd := d.Update(key('e'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
	if !state.HasPath() {
		t.Error("editing the profile should keep the current path")
	}
}

func TestLogoutEmitsMsg(t *testing.T) {
	for _, r := range []rune{'l', 'L'} {
		d, _, _ := newTestDashboard(t)

		_, cmd := d.Update(key(r))
		if cmd == nil {
			t.Fatalf("%q: expected a command", r)
		}
		if _, ok := cmd().(LogoutMsg); !ok {
			t.Fatalf("%q: expected LogoutMsg", r)
		}
	}
}

func TestKeyHintsMatchBindings(t *testing.T) {
	d, _, _ := newTestDashboard(t)

	want := map[string]bool{"t": true, "e": true, "n": true, "l": true}
	for _, h := range d.KeyHints() {
		delete(want, h.Key)
	}
	if len(want) != 0 {
		t.Errorf("missing hints for keys %v", want)
	}
}

func TestTutorPanelSend(t *testing.T) {
	d, state, chatter := newTestDashboard(t)

	d.Update(key('t'))
	if !state.Panel.IsOpen() {
		t.Fatal("expected panel open")
	}
	if !d.CapturesInput() {
		t.Error("open panel should capture input")
	}

	typeText(d, "What is a cell?")
	_, cmd := d.Update(special(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected chat command")
	}
	if !state.Panel.IsSending() {
		t.Error("expected panel sending")
	}
	if d.chat.Value() != "" {
		t.Errorf("expected input cleared, got %q", d.chat.Value())
	}

	// A second question while the first is pending is ignored.
	typeText(d, "Another?")
	if _, cmd := d.Update(special(tea.KeyEnter)); cmd != nil {
		t.Error("send while sending should be a no-op")
	}

	reply, ok := cmd().(jobs.ChatReplyMsg)
	if !ok {
		t.Fatalf("expected ChatReplyMsg, got %T", cmd())
	}
	if chatter.calls != 1 {
		t.Errorf("expected 1 chat call, got %d", chatter.calls)
	}
	reply.Panel.Resolve(reply.Ticket, reply.Reply, reply.Err)

	entries := state.Panel.Transcript().Entries()
	if len(entries) != 3 {
		t.Fatalf("expected greeting, question, reply; got %d entries", len(entries))
	}
	if entries[2].Role != tutor.RoleAssistant || entries[2].Text != "You asked: What is a cell?" {
		t.Errorf("unexpected reply entry %+v", entries[2])
	}
	if !strings.Contains(d.View(140, 40), "You asked") {
		t.Error("expected reply rendered in panel")
	}
}

func TestTutorBlankQuestionIgnored(t *testing.T) {
	d, state, _ := newTestDashboard(t)
	d.Update(key('t'))

	typeText(d, "   ")
	if _, cmd := d.Update(special(tea.KeyEnter)); cmd != nil {
		t.Error("blank question should not send")
	}
	if state.Panel.Transcript().Len() != 1 {
		t.Error("transcript should only hold the greeting")
	}
}

func TestEscClosesPanelKeepsTranscript(t *testing.T) {
	d, state, _ := newTestDashboard(t)
	d.Update(key('t'))
	typeText(d, "hi")
	_, cmd := d.Update(special(tea.KeyEnter))
	reply := cmd().(jobs.ChatReplyMsg)
	reply.Panel.Resolve(reply.Ticket, reply.Reply, reply.Err)

	d.Update(special(tea.KeyEscape))
	if state.Panel.IsOpen() {
		t.Fatal("expected panel closed")
	}
	if d.CapturesInput() {
		t.Error("closed panel should not capture input")
	}

	d.Update(key('t'))
	if state.Panel.Transcript().Len() != 3 {
		t.Errorf("transcript should persist across close/open, got %d", state.Panel.Transcript().Len())
	}
}

func TestPanelKeysDoNotToggleModules(t *testing.T) {
	d, state, _ := newTestDashboard(t)
	d.Update(key('t'))
	typeText(d, "x n e")

	if state.Tracker.Len() != 0 {
		t.Error("typing in the panel should not toggle modules")
	}
	if !state.HasPath() {
		t.Error("typing in the panel should not reset the path")
	}
}

func TestViewWithoutPath(t *testing.T) {
	d, state, _ := newTestDashboard(t)
	state.Reset()
	if !strings.Contains(d.View(80, 20), "No learning path") {
		t.Error("expected empty-state hint")
	}
}
