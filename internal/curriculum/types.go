package curriculum

import "slices"

// Level is a learner's or a module's proficiency band.
type Level string

const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
)

// Levels lists every Level in ascending order.
var Levels = []Level{Beginner, Intermediate, Advanced}

// LearningStyle is how the learner prefers to take in material.
type LearningStyle string

const (
	Visual         LearningStyle = "Visual"
	Auditory       LearningStyle = "Auditory"
	ReadingWriting LearningStyle = "Reading/Writing"
	Kinesthetic    LearningStyle = "Kinesthetic"
)

// LearningStyles lists every LearningStyle.
var LearningStyles = []LearningStyle{Visual, Auditory, ReadingWriting, Kinesthetic}

// AgeGroups are the suggested audience bands. Profile.AgeGroup accepts any
// string; these are what the planner form cycles through.
var AgeGroups = []string{
	"Primary School",
	"Middle School",
	"High School",
	"Intermediate / 12th",
	"Undergraduate",
	"Professional",
}

// Profile describes the learner a path is generated for.
type Profile struct {
	Name                  string
	Goal                  string `validate:"notblank"`
	AgeGroup              string
	CurrentLevel          Level
	Interests             []string
	AvailableHoursPerWeek int
	LearningStyle         LearningStyle
	PriorKnowledge        string
}

// Clone returns a copy that shares no slices with p.
func (p Profile) Clone() Profile {
	p.Interests = slices.Clone(p.Interests)
	return p
}

// LearningPath is a generated curriculum. It is replaced wholesale on
// regeneration and never edited in place.
type LearningPath struct {
	Topic               string   `json:"topic"`
	Summary             string   `json:"summary"`
	TotalEstimatedWeeks string   `json:"totalEstimatedWeeks"`
	Prerequisites       []string `json:"prerequisites"`
	Outcomes            []string `json:"outcomes"`
	Modules             []Module `json:"modules"`
}

// ModuleIDs returns the IDs of all modules in order.
func (p *LearningPath) ModuleIDs() []string {
	if p == nil {
		return nil
	}
	ids := make([]string, len(p.Modules))
	for i, m := range p.Modules {
		ids[i] = m.ID
	}
	return ids
}

// Module returns the module with the given ID.
func (p *LearningPath) Module(id string) (Module, bool) {
	if p == nil {
		return Module{}, false
	}
	for _, m := range p.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

// Module is one unit of a learning path.
type Module struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Difficulty  Level      `json:"difficulty"`
	Activities  []string   `json:"activities"`
	Resources   []Resource `json:"resources"`
	Project     Project    `json:"project"`
}

// ResourceType only selects an icon when rendering.
type ResourceType string

const (
	ResourceVideo   ResourceType = "video"
	ResourceArticle ResourceType = "article"
	ResourceQuiz    ResourceType = "quiz"
	ResourceTool    ResourceType = "tool"
)

// Resource is an external study link.
type Resource struct {
	Name string       `json:"name"`
	URL  string       `json:"url"`
	Type ResourceType `json:"type"`
}

// Project is a module's closing check-in task.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
