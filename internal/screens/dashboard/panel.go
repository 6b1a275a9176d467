package dashboard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edustream/internal/tutor"
	"github.com/abhisek/edustream/internal/ui/theme"
)

// renderPanel draws the tutor transcript, newest entries at the bottom,
// with the question input underneath.
func (d *DashboardScreen) renderPanel(width, height int) string {
	panel := d.state.Panel
	inner := max(width-4, 10)

	header := theme.Section.Render("Tutor · " + panel.Topic())
	input := d.chat.View(5)

	var status string
	if panel.IsSending() {
		status = theme.Hint.Render("Tutor is typing…")
	}

	// border (2) + header + blank + input + status
	avail := max(height-6, 1)
	body := transcriptLines(panel.Transcript().Entries(), inner)
	if len(body) > avail {
		body = body[len(body)-avail:]
	}

	content := header + "\n\n" + strings.Join(body, "\n")
	content = lipgloss.NewStyle().Height(avail + 2).Render(content)
	content += "\n" + status + "\n" + input

	return theme.Card.
		Width(width).
		Height(height).
		BorderForeground(theme.Primary).
		Render(content)
}

func transcriptLines(entries []tutor.Entry, width int) []string {
	you := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	bot := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	text := lipgloss.NewStyle().Foreground(theme.Text).Width(width)

	var lines []string
	for i, e := range entries {
		if i > 0 {
			lines = append(lines, "")
		}
		if e.Role == tutor.RoleUser {
			lines = append(lines, you.Render("You"))
		} else {
			lines = append(lines, bot.Render("Tutor"))
		}
		lines = append(lines, strings.Split(text.Render(e.Text), "\n")...)
	}
	return lines
}
