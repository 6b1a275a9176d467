package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edustream/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a field label.
type TextInput struct {
	Label string
	Model textinput.Model
}

// NewTextInput creates a blurred, labelled text input.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Label: label, Model: ti}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and input on one line.
func (t TextInput) View(labelWidth int) string {
	return renderLabel(t.Label, labelWidth, t.Focused()) + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

func renderLabel(label string, width int, focused bool) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim).Width(width)
	marker := "  "
	if focused {
		style = style.Foreground(theme.Primary).Bold(true)
		marker = "▸ "
	}
	return marker + style.Render(label)
}
