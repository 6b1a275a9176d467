package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/jobs"
	"github.com/abhisek/edustream/internal/router"
	"github.com/abhisek/edustream/internal/screen"
	"github.com/abhisek/edustream/internal/studio"
	"github.com/abhisek/edustream/internal/ui/components"
	"github.com/abhisek/edustream/internal/ui/layout"
	"github.com/abhisek/edustream/internal/ui/theme"
)

// LogoutMsg asks the app to forget the learner and return to the welcome
// screen.
type LogoutMsg struct{}

const (
	chatCharLimit = 500
	overviewLines = 6 // title, summary, meta, blank, progress, blank
)

// DashboardScreen lists the modules of the current path with their
// completion state, and hosts the tutor panel.
type DashboardScreen struct {
	state        *studio.State
	run          jobs.Runner
	cursor       int
	scrollOffset int
	chat         components.TextInput
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.InputCapturer = (*DashboardScreen)(nil)

// New creates a dashboard over state's current path.
func New(state *studio.State, run jobs.Runner) *DashboardScreen {
	return &DashboardScreen{
		state: state,
		run:   run,
		chat:  components.NewTextInput("Ask", "Ask your tutor a question...", chatCharLimit),
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	if d.panelOpen() {
		return d.chat.Focus()
	}
	return nil
}

func (d *DashboardScreen) Title() string {
	return "My Learning Path"
}

func (d *DashboardScreen) CapturesInput() bool {
	return d.panelOpen()
}

// KeyHints returns the key binding hints for the footer.
func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	if d.panelOpen() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "↑↓", Description: "Modules"},
			{Key: "Esc", Description: "Close tutor"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle done"},
		{Key: "Enter", Description: "Details"},
		{Key: "t", Description: "Tutor"},
		{Key: "e", Description: "Edit profile"},
		{Key: "n", Description: "New path"},
		{Key: "l", Description: "Log out"},
	}
}

func (d *DashboardScreen) panelOpen() bool {
	return d.state.Panel != nil && d.state.Panel.IsOpen()
}

func (d *DashboardScreen) modules() []curriculum.Module {
	if d.state.Path == nil {
		return nil
	}
	return d.state.Path.Modules
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if d.panelOpen() {
			var cmd tea.Cmd
			d.chat, cmd = d.chat.Update(msg)
			return d, cmd
		}
		return d, nil
	}

	key := kmsg.String()
	switch key {
	case "up":
		d.moveCursor(-1)
		return d, nil
	case "down":
		d.moveCursor(1)
		return d, nil
	}

	if d.panelOpen() {
		return d.updateChat(kmsg)
	}

	switch key {
	case "k":
		d.moveCursor(-1)
	case "j":
		d.moveCursor(1)
	case "space", " ", "x":
		d.toggleCurrent()
	case "enter":
		return d, d.openDetail()
	case "t":
		return d, d.openPanel()
	case "e":
		return d, func() tea.Msg { return router.PopScreenMsg{} }
	case "n":
		d.state.Reset()
		return d, func() tea.Msg { return router.PopScreenMsg{} }
	case "l", "L", "shift+l":
		return d, func() tea.Msg { return LogoutMsg{} }
	}
	return d, nil
}

func (d *DashboardScreen) updateChat(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		d.state.Panel.Close()
		d.chat.Blur()
		return d, nil
	case "enter":
		return d, d.send()
	}
	var cmd tea.Cmd
	d.chat, cmd = d.chat.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) openPanel() tea.Cmd {
	if d.state.Panel == nil {
		return nil
	}
	d.state.Panel.Open()
	return d.chat.Focus()
}

func (d *DashboardScreen) send() tea.Cmd {
	panel := d.state.Panel
	ticket, ok := panel.Send(d.chat.Value())
	if !ok {
		return nil
	}
	d.chat.Reset()
	return d.run.Chat(panel, ticket, d.state.Path)
}

func (d *DashboardScreen) moveCursor(delta int) {
	n := len(d.modules())
	if n == 0 {
		return
	}
	d.cursor = min(max(d.cursor+delta, 0), n-1)
}

func (d *DashboardScreen) toggleCurrent() {
	mods := d.modules()
	if d.cursor < len(mods) {
		d.state.ToggleModule(mods[d.cursor].ID)
	}
}

func (d *DashboardScreen) openDetail() tea.Cmd {
	mods := d.modules()
	if d.cursor >= len(mods) {
		return nil
	}
	detail := newModuleDetail(d.state, mods[d.cursor].ID)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

// adjustScroll keeps the cursor row inside a window of height rows.
func (d *DashboardScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if d.cursor < d.scrollOffset {
		d.scrollOffset = d.cursor
	}
	if d.cursor >= d.scrollOffset+height {
		d.scrollOffset = d.cursor - height + 1
	}
}

func (d *DashboardScreen) View(width, height int) string {
	path := d.state.Path
	if path == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No learning path yet. Press e to plan one."))
	}

	listWidth := width
	var panel string
	if d.panelOpen() {
		listWidth = width * 11 / 20
		panel = d.renderPanel(width-listWidth-1, height)
	}

	left := d.renderOverview(path, listWidth) + "\n" + d.renderModules(listWidth, height-overviewLines)
	left = lipgloss.NewStyle().Width(listWidth).MaxHeight(height).Render(left)
	if panel == "" {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", panel)
}

func (d *DashboardScreen) renderOverview(path *curriculum.LearningPath, width int) string {
	inner := max(width-4, 10)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  " + theme.Title.Render(layout.Truncate(path.Topic, inner)) + "\n")
	b.WriteString("  " + dim.Render(layout.Truncate(path.Summary, inner)) + "\n")
	meta := fmt.Sprintf("%d modules · %s", len(path.Modules), path.TotalEstimatedWeeks)
	b.WriteString("  " + dim.Render(meta) + "\n\n")

	done := d.state.Tracker.Count(path)
	label := fmt.Sprintf("%d/%d done", done, len(path.Modules))
	b.WriteString("  " + components.NewProgressBar(label, d.state.Progress(), true, inner).View() + "\n")
	return b.String()
}

func (d *DashboardScreen) renderModules(width, height int) string {
	mods := d.modules()
	d.adjustScroll(height)

	var lines []string
	for i := d.scrollOffset; i < len(mods) && len(lines) < height; i++ {
		lines = append(lines, d.renderModuleRow(i, mods[i], width))
	}
	return strings.Join(lines, "\n")
}

func (d *DashboardScreen) renderModuleRow(i int, m curriculum.Module, width int) string {
	selected := i == d.cursor
	done := d.state.Tracker.IsDone(m.ID)

	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	check := "[ ]"
	if done {
		check = theme.Done.Render("[✓]")
	}

	level := string(m.Difficulty)
	levelWidth := 12
	durationWidth := 10
	titleWidth := max(width-2-len(cursor)-4-4-levelWidth-durationWidth-2, 10)
	title := fmt.Sprintf("%d. %s", i+1, m.Title)
	title = fmt.Sprintf("%-*s", titleWidth, layout.Truncate(title, titleWidth))

	var titleStyle lipgloss.Style
	switch {
	case selected:
		titleStyle = theme.Selected
	case done:
		titleStyle = theme.Done
	default:
		titleStyle = theme.Unselected
	}

	return fmt.Sprintf("  %s%s %s %s %s",
		cursor,
		check,
		titleStyle.Render(title),
		theme.Difficulty(m.Difficulty).Render(fmt.Sprintf("%-*s", levelWidth, level)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(layout.Truncate(m.Duration, durationWidth)),
	)
}
