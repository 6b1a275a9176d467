package curriculum

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/edustream/internal/llm"
)

// SamplePath builds a deterministic six-unit path for a profile. The mock
// provider serves it in offline demos and tests use it as a canned reply.
func SamplePath(p Profile) *LearningPath {
	goal := strings.TrimSpace(p.Goal)
	if goal == "" {
		goal = "General Studies"
	}
	level := p.CurrentLevel
	if level == "" {
		level = Beginner
	}

	stages := []struct {
		title string
		focus string
	}{
		{"Foundations", "core vocabulary and the big picture"},
		{"Key Concepts", "the central ideas and how they connect"},
		{"Worked Practice", "guided problems with step-by-step solutions"},
		{"Applications", "real-world uses and case studies"},
		{"Deeper Dive", "harder questions and common misconceptions"},
		{"Capstone Review", "pulling everything together"},
	}

	path := &LearningPath{
		Topic:               goal,
		Summary:             fmt.Sprintf("A %d-unit roadmap that takes you from the basics of %s to confident application.", len(stages), goal),
		TotalEstimatedWeeks: fmt.Sprintf("%d weeks", len(stages)*2),
		Prerequisites:       []string{"Curiosity and a notebook", "About " + hoursLabel(p.AvailableHoursPerWeek) + " each week"},
		Outcomes: []string{
			"Explain the main ideas of " + goal + " in your own words",
			"Solve typical problems independently",
			"Connect " + goal + " to everyday situations",
		},
	}

	for i, st := range stages {
		n := i + 1
		path.Modules = append(path.Modules, Module{
			ID:          fmt.Sprintf("unit-%d", n),
			Title:       fmt.Sprintf("%s: %s", st.title, goal),
			Description: fmt.Sprintf("Explore %s of %s.", st.focus, goal),
			Duration:    "2 weeks",
			Difficulty:  moduleLevel(level, i, len(stages)),
			Activities: []string{
				"Read the unit overview and take notes",
				"Watch a short explainer and summarise it",
				"Work through a practice set",
				"Teach one idea back to a friend",
			},
			Resources: []Resource{
				{Name: "Khan Academy", URL: "https://www.khanacademy.org", Type: ResourceVideo},
				{Name: "Unit reading", URL: "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(goal, " ", "_"), Type: ResourceArticle},
				{Name: "Self check", URL: "https://quizlet.com", Type: ResourceQuiz},
			},
			Project: Project{
				Title:       fmt.Sprintf("Check-in %d", n),
				Description: fmt.Sprintf("Create a one-page summary of %s and three questions you still have.", st.focus),
			},
		})
	}
	return path
}

// moduleLevel ramps difficulty from the learner's level upward.
func moduleLevel(start Level, i, n int) Level {
	idx := 0
	for j, l := range Levels {
		if l == start {
			idx = j
		}
	}
	idx += i * len(Levels) / n
	if idx >= len(Levels) {
		idx = len(Levels) - 1
	}
	return Levels[idx]
}

func hoursLabel(h int) string {
	if h <= 0 {
		return "a few hours"
	}
	return fmt.Sprintf("%d hours", h)
}

// sampleTutorReply answers tutor questions in demo mode.
const sampleTutorReply = "Great question! Start by restating the idea in your own words, " +
	"then try one small example. If you get stuck, revisit the first activity of the current unit."

// SampleResponder is an llm.MockProvider responder for offline runs. It
// answers learning path requests with SamplePath for the profile described
// in the prompt and every other request with a fixed study tip.
func SampleResponder(req llm.Request) llm.MockResponse {
	if req.Schema == nil {
		return llm.MockResponse{Content: json.RawMessage(sampleTutorReply)}
	}
	var prompt string
	if len(req.Messages) > 0 {
		prompt = req.Messages[len(req.Messages)-1].Content
	}
	data, err := json.Marshal(SamplePath(profileFromPrompt(prompt)))
	if err != nil {
		return llm.MockResponse{Err: err}
	}
	return llm.MockResponse{Content: data}
}

// profileFromPrompt recovers the fields SamplePath uses from a prompt built
// by buildUserMessage.
func profileFromPrompt(prompt string) Profile {
	var p Profile
	for _, line := range strings.Split(prompt, "\n") {
		switch {
		case strings.HasPrefix(line, "- Subject/Skill: "):
			p.Goal = strings.TrimPrefix(line, "- Subject/Skill: ")
		case strings.HasPrefix(line, "- Weekly Commitment: "):
			fmt.Sscanf(line, "- Weekly Commitment: %d hours", &p.AvailableHoursPerWeek)
		case strings.HasPrefix(line, "- Target Learner: "):
			if i := strings.LastIndex(line, "(Level: "); i >= 0 {
				p.CurrentLevel = Level(strings.TrimSuffix(line[i+len("(Level: "):], ")"))
			}
		}
	}
	return p
}
