// Package jobs runs generation and tutoring requests off the UI event loop.
// Each command reports back with a message carrying the ticket it was
// started with, so the receiver can drop results that have been superseded.
package jobs

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/studio"
	"github.com/abhisek/edustream/internal/tutor"
)

// GenerationDoneMsg is sent when a learning path request settles.
type GenerationDoneMsg struct {
	Ticket studio.Ticket
	Path   *curriculum.LearningPath
	Err    error
}

// ChatReplyMsg is sent when a tutor request settles. Panel is the panel the
// question was asked on, which may no longer be the current one.
type ChatReplyMsg struct {
	Panel  *tutor.Panel
	Ticket tutor.Ticket
	Reply  string
	Err    error
}

// Runner holds the services the commands call.
type Runner struct {
	Generator curriculum.Generator
	Chatter   tutor.Chatter
}

// Generate requests a learning path for the ticket's profile.
func (r Runner) Generate(t studio.Ticket) tea.Cmd {
	gen := r.Generator
	return func() tea.Msg {
		path, err := gen.Generate(context.Background(), t.Profile)
		return GenerationDoneMsg{Ticket: t, Path: path, Err: err}
	}
}

// Chat asks the tutor the ticket's question about path.
func (r Runner) Chat(p *tutor.Panel, t tutor.Ticket, path *curriculum.LearningPath) tea.Cmd {
	chatter := r.Chatter
	return func() tea.Msg {
		reply, err := chatter.Chat(context.Background(), t.Message, path)
		return ChatReplyMsg{Panel: p, Ticket: t, Reply: reply, Err: err}
	}
}
