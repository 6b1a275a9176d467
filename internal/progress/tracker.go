// Package progress tracks which modules of the current path are done.
package progress

import (
	"math"

	"github.com/abhisek/edustream/internal/curriculum"
)

// Tracker is the completion set: a set of module IDs marked done. IDs that
// are not in the path being measured never count.
type Tracker struct {
	done map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{done: make(map[string]struct{})}
}

// Toggle flips id and reports its new state.
func (t *Tracker) Toggle(id string) bool {
	if _, ok := t.done[id]; ok {
		delete(t.done, id)
		return false
	}
	t.done[id] = struct{}{}
	return true
}

// Set marks id done or not done.
func (t *Tracker) Set(id string, done bool) {
	if done {
		t.done[id] = struct{}{}
		return
	}
	delete(t.done, id)
}

// IsDone reports whether id is marked done.
func (t *Tracker) IsDone(id string) bool {
	_, ok := t.done[id]
	return ok
}

// Count returns how many of the path's modules are done.
func (t *Tracker) Count(path *curriculum.LearningPath) int {
	n := 0
	for _, id := range path.ModuleIDs() {
		if t.IsDone(id) {
			n++
		}
	}
	return n
}

// Percent returns round(100 * done / modules), or 0 for a path without
// modules. The result is always within [0, 100].
func (t *Tracker) Percent(path *curriculum.LearningPath) int {
	if path == nil || len(path.Modules) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(t.Count(path)) / float64(len(path.Modules))))
}

// Len returns the raw size of the set, including IDs from older paths.
func (t *Tracker) Len() int { return len(t.done) }

// Reset empties the set.
func (t *Tracker) Reset() {
	clear(t.done)
}
