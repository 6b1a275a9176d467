package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/screen"
	"github.com/abhisek/edustream/internal/studio"
	"github.com/abhisek/edustream/internal/ui/layout"
	"github.com/abhisek/edustream/internal/ui/theme"
)

// ModuleDetailScreen shows everything in a single module.
type ModuleDetailScreen struct {
	state *studio.State
	id    string
}

var _ screen.Screen = (*ModuleDetailScreen)(nil)
var _ screen.KeyHintProvider = (*ModuleDetailScreen)(nil)

func newModuleDetail(state *studio.State, id string) *ModuleDetailScreen {
	return &ModuleDetailScreen{state: state, id: id}
}

func (d *ModuleDetailScreen) Init() tea.Cmd { return nil }

func (d *ModuleDetailScreen) Title() string {
	if m, ok := d.state.Path.Module(d.id); ok {
		return m.Title
	}
	return "Module"
}

func (d *ModuleDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "space", " ", "x":
			d.state.ToggleModule(d.id)
		}
	}
	return d, nil
}

func (d *ModuleDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Toggle done"},
		{Key: "Esc", Description: "Back"},
	}
}

var resourceIcons = map[curriculum.ResourceType]string{
	curriculum.ResourceVideo:   "▶",
	curriculum.ResourceArticle: "≡",
	curriculum.ResourceQuiz:    "?",
	curriculum.ResourceTool:    "⚙",
}

func (d *ModuleDetailScreen) View(width, height int) string {
	m, ok := d.state.Path.Module(d.id)
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("This module is no longer part of your path."))
	}

	contentWidth := min(width-8, 90)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)
	para := lipgloss.NewStyle().Width(contentWidth).Foreground(theme.Text).PaddingLeft(2)

	var b strings.Builder

	status := dimStyle.Render("Not started")
	if d.state.Tracker.IsDone(m.ID) {
		status = theme.Done.Render("✓ Completed")
	}
	b.WriteString(theme.Title.Render("  "+m.Title) + "   " + status + "\n")
	b.WriteString(dimStyle.Render("  Level:    ") + theme.Difficulty(m.Difficulty).Render(string(m.Difficulty)) + "\n")
	b.WriteString(dimStyle.Render("  Duration: ") + valStyle.Render(m.Duration) + "\n\n")

	if m.Description != "" {
		b.WriteString(para.Render(m.Description) + "\n\n")
	}

	if len(m.Activities) > 0 {
		b.WriteString(theme.Section.Render("  Activities") + "\n")
		for _, a := range m.Activities {
			b.WriteString(para.Render("• "+a) + "\n")
		}
		b.WriteString("\n")
	}

	if len(m.Resources) > 0 {
		b.WriteString(theme.Section.Render("  Resources") + "\n")
		for _, r := range m.Resources {
			icon := resourceIcons[r.Type]
			if icon == "" {
				icon = "•"
			}
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", icon, valStyle.Render(r.Name), dimStyle.Render(r.URL)))
		}
		b.WriteString("\n")
	}

	if m.Project.Title != "" {
		b.WriteString(theme.Section.Render("  Project: ") + valStyle.Bold(true).Render(m.Project.Title) + "\n")
		b.WriteString(para.Render(m.Project.Description) + "\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
