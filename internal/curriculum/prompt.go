package curriculum

import (
	"fmt"
	"strings"
)

const (
	unitsPerPath      = 6
	activitiesPerUnit = 4
	resourcesPerUnit  = 3
)

const systemPrompt = `You are a senior educational architect for the learning platform "EduStream". You design highly structured, age-appropriate learning roadmaps.`

func buildUserMessage(p Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %d-unit learning roadmap for the goal: %q.\n", unitsPerPath, p.Goal)

	b.WriteString("\nContext:\n")
	if p.Name != "" {
		fmt.Fprintf(&b, "- Learner: %s\n", p.Name)
	}
	fmt.Fprintf(&b, "- Target Learner: %s (Level: %s)\n", p.AgeGroup, p.CurrentLevel)
	fmt.Fprintf(&b, "- Subject/Skill: %s\n", p.Goal)
	fmt.Fprintf(&b, "- Weekly Commitment: %d hours\n", p.AvailableHoursPerWeek)
	fmt.Fprintf(&b, "- Preferred Style: %s\n", p.LearningStyle)
	fmt.Fprintf(&b, "- Specific Interests to include: %s\n", strings.Join(p.Interests, ", "))
	if p.PriorKnowledge != "" {
		fmt.Fprintf(&b, "- Prior Knowledge: %s\n", p.PriorKnowledge)
	}

	fmt.Fprintf(&b, `
Guidelines:
1. If this is a school subject (like Math, Science, History), follow standard curriculum progressions (K-12 or Intermediate/College level).
2. Units should build logically. Start with foundations and theory, then move to application.
3. Include %d specific learning activities for each unit (e.g. experiments, problem sets, case studies, videos).
4. Provide %d high-quality resource links per unit (use well-known sites like khanacademy.org, coursera.org, youtube.com/education where appropriate).
5. Each unit must have a "Final Task" or "Check-in Project".
6. Give every unit a unique id such as "unit-1".
7. Tone: encouraging, professional and clear.`, activitiesPerUnit, resourcesPerUnit)

	return b.String()
}
