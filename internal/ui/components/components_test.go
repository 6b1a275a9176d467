package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestProgressBarClampsPercent(t *testing.T) {
	if got := NewProgressBar("", 140, true, 40).Percent; got != 100 {
		t.Errorf("expected 100, got %d", got)
	}
	if got := NewProgressBar("", -5, true, 40).Percent; got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestProgressBarShowsPercent(t *testing.T) {
	view := NewProgressBar("Progress", 50, true, 40).View()
	if !strings.Contains(view, "50%") {
		t.Errorf("expected percent label in %q", view)
	}
	if w := lipgloss.Width(view); w > 40 {
		t.Errorf("bar wider than requested: %d", w)
	}
}

func TestChoiceShowsArrowsWhenFocused(t *testing.T) {
	c := Choice{Label: "Level", Value: "Advanced"}
	if strings.Contains(c.View(12), "◂") {
		t.Error("blurred choice should not show arrows")
	}
	c.Focused = true
	view := c.View(12)
	if !strings.Contains(view, "◂ Advanced ▸") {
		t.Errorf("expected arrows around value, got %q", view)
	}
}

func TestTextInputFocus(t *testing.T) {
	ti := NewTextInput("Goal", "e.g. AP Biology", 0)
	if ti.Focused() {
		t.Fatal("new input should start blurred")
	}
	ti.Focus()
	if !ti.Focused() {
		t.Fatal("expected focus")
	}
	ti.SetValue("Chess")
	if ti.Value() != "Chess" {
		t.Errorf("expected value Chess, got %q", ti.Value())
	}
	ti.Reset()
	if ti.Value() != "" {
		t.Errorf("expected empty after reset, got %q", ti.Value())
	}
}
