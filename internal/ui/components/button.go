package components

import (
	"github.com/abhisek/edustream/internal/ui/theme"
)

// Button is a focusable action rendered at the bottom of a form.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Focused {
		label = "▸ " + label
	}
	if b.Focused && !b.Disabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
