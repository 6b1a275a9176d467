// Package studio holds the view state of one EduStream run: the planner
// form, the current path, its completion set and the tutor panel. All
// mutation goes through the named transitions below, called from the UI
// event loop.
package studio

import (
	"errors"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/profile"
	"github.com/abhisek/edustream/internal/progress"
	"github.com/abhisek/edustream/internal/tutor"
)

// Ticket identifies one generation request.
type Ticket struct {
	Seq     uint64
	Profile curriculum.Profile
}

// State is the top-level view state.
type State struct {
	User    string
	Form    *profile.Form
	Path    *curriculum.LearningPath
	Tracker *progress.Tracker
	Panel   *tutor.Panel

	// Loading is true while the latest generation request is in flight.
	Loading bool

	// Error is the message shown on the planner form; empty when none.
	Error string

	genSeq uint64
}

// New returns the state for a fresh run.
func New() *State {
	return &State{
		Form:    profile.NewForm(),
		Tracker: progress.NewTracker(),
	}
}

// Login records the display name and pre-fills the form with it.
func (s *State) Login(name string) {
	s.User = name
	s.Form.SetName(name)
}

// Logout forgets the learner, the path and its progress.
func (s *State) Logout() {
	s.User = ""
	s.Form = profile.NewForm()
	s.clearPath()
	s.Error = ""
	s.Loading = false
	s.genSeq++
}

// SubmitProfile validates the form and, on success, starts a generation.
// Validation failures set Error and return the error without a ticket.
func (s *State) SubmitProfile() (Ticket, error) {
	p, err := s.Form.Submit()
	if err != nil {
		var verr *curriculum.ValidationError
		if errors.As(err, &verr) {
			s.Error = verr.Message
		} else {
			s.Error = err.Error()
		}
		return Ticket{}, err
	}
	s.Loading = true
	s.Error = ""
	s.genSeq++
	return Ticket{Seq: s.genSeq, Profile: p}, nil
}

// ApplyGeneration records the outcome of a ticket. Results for anything
// but the latest ticket are dropped and false is returned. On failure the
// previous path is kept and Error holds the generic banner. On success the
// path is replaced, progress cleared and a fresh tutor panel created.
func (s *State) ApplyGeneration(t Ticket, path *curriculum.LearningPath, err error) bool {
	if t.Seq != s.genSeq || !s.Loading {
		return false
	}
	s.Loading = false

	if err == nil && path == nil {
		err = curriculum.ErrNoModules
	}
	if err != nil {
		var verr *curriculum.ValidationError
		if errors.As(err, &verr) {
			s.Error = verr.Message
		} else {
			s.Error = curriculum.GenerationMessage
		}
		return true
	}

	s.Path = path
	s.Tracker.Reset()
	s.Panel = tutor.NewPanel(path.Topic)
	s.Error = ""
	return true
}

// HasPath reports whether the dashboard has something to show.
func (s *State) HasPath() bool { return s.Path != nil }

// ToggleModule flips completion for a module of the current path. IDs
// outside the path are ignored.
func (s *State) ToggleModule(id string) bool {
	if _, ok := s.Path.Module(id); !ok {
		return false
	}
	s.Tracker.Toggle(id)
	return true
}

// Progress returns the completion percentage of the current path.
func (s *State) Progress() int {
	return s.Tracker.Percent(s.Path)
}

// Reset returns to the planner form. Form contents are kept; the path, its
// progress and the tutor panel are discarded. Any in-flight generation is
// abandoned.
func (s *State) Reset() {
	s.clearPath()
	s.Error = ""
	s.Loading = false
	s.genSeq++
}

func (s *State) clearPath() {
	s.Path = nil
	s.Tracker.Reset()
	s.Panel = nil
}
