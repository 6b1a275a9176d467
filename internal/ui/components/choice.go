package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edustream/internal/ui/theme"
)

// Choice renders a selector row. The caller owns the value and cycles it on
// left and right.
type Choice struct {
	Label   string
	Value   string
	Focused bool
}

// View renders the label followed by the current value.
func (c Choice) View(labelWidth int) string {
	var value string
	if c.Focused {
		value = theme.Selected.Render("◂ " + c.Value + " ▸")
	} else {
		value = lipgloss.NewStyle().Foreground(theme.Text).Render("  " + c.Value)
	}
	return renderLabel(c.Label, labelWidth, c.Focused) + value
}
