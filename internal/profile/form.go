// Package profile accumulates the learner profile behind the planner form.
package profile

import (
	"strings"

	"github.com/abhisek/edustream/internal/curriculum"
)

// Weekly hours bounds and defaults.
const (
	MinHours     = 2
	MaxHours     = 40
	DefaultHours = 12
)

// DefaultAgeGroup is preselected on a fresh form.
const DefaultAgeGroup = "High School"

// Form holds the in-progress profile. Fields are set directly by the UI;
// nothing is validated until Submit.
type Form struct {
	p curriculum.Profile
}

// NewForm returns a form with the planner defaults.
func NewForm() *Form {
	return &Form{p: curriculum.Profile{
		AgeGroup:              DefaultAgeGroup,
		CurrentLevel:          curriculum.Beginner,
		AvailableHoursPerWeek: DefaultHours,
		LearningStyle:         curriculum.ReadingWriting,
	}}
}

// Profile returns a copy of the current field values.
func (f *Form) Profile() curriculum.Profile { return f.p.Clone() }

func (f *Form) SetName(name string)                         { f.p.Name = name }
func (f *Form) SetGoal(goal string)                         { f.p.Goal = goal }
func (f *Form) SetAgeGroup(group string)                    { f.p.AgeGroup = group }
func (f *Form) SetLevel(level curriculum.Level)             { f.p.CurrentLevel = level }
func (f *Form) SetLearningStyle(s curriculum.LearningStyle) { f.p.LearningStyle = s }
func (f *Form) SetPriorKnowledge(text string)               { f.p.PriorKnowledge = text }

// SetHours stores the weekly hours clamped to [MinHours, MaxHours].
func (f *Form) SetHours(h int) {
	f.p.AvailableHoursPerWeek = ClampHours(h)
}

// ClampHours bounds h to [MinHours, MaxHours].
func ClampHours(h int) int {
	return min(max(h, MinHours), MaxHours)
}

// AddInterest appends trimmed text. Blank text is ignored; duplicates are
// kept and there is no limit.
func (f *Form) AddInterest(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	f.p.Interests = append(f.p.Interests, text)
	return true
}

// RemoveLastInterest drops the most recently added interest.
func (f *Form) RemoveLastInterest() bool {
	if len(f.p.Interests) == 0 {
		return false
	}
	f.p.Interests = f.p.Interests[:len(f.p.Interests)-1]
	return true
}

// Submit validates the goal and returns a snapshot that later edits to the
// form cannot reach.
func (f *Form) Submit() (curriculum.Profile, error) {
	if err := f.p.Validate(); err != nil {
		return curriculum.Profile{}, err
	}
	return f.p.Clone(), nil
}

// Cycle returns the element after cur in opts, wrapping around. dir is +1
// or -1. An unknown cur starts from the first option.
func Cycle[T comparable](opts []T, cur T, dir int) T {
	if len(opts) == 0 {
		return cur
	}
	for i, o := range opts {
		if o == cur {
			return opts[((i+dir)%len(opts)+len(opts))%len(opts)]
		}
	}
	return opts[0]
}
