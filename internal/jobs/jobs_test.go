package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/studio"
	"github.com/abhisek/edustream/internal/tutor"
)

type fakeGenerator struct {
	got curriculum.Profile
	err error
}

func (f *fakeGenerator) Generate(_ context.Context, p curriculum.Profile) (*curriculum.LearningPath, error) {
	f.got = p
	if f.err != nil {
		return nil, f.err
	}
	return curriculum.SamplePath(p), nil
}

type fakeChatter struct {
	question string
	topic    string
}

func (f *fakeChatter) Chat(_ context.Context, message string, path *curriculum.LearningPath) (string, error) {
	f.question = message
	f.topic = path.Topic
	return "Great question.", nil
}

func TestGenerateCarriesTicket(t *testing.T) {
	gen := &fakeGenerator{}
	r := Runner{Generator: gen}
	tk := studio.Ticket{Seq: 7, Profile: curriculum.Profile{Goal: "Chess"}}

	msg, ok := r.Generate(tk)().(GenerationDoneMsg)
	require.True(t, ok)
	assert.Equal(t, uint64(7), msg.Ticket.Seq)
	assert.NoError(t, msg.Err)
	assert.Equal(t, "Chess", msg.Path.Topic)
	assert.Equal(t, "Chess", gen.got.Goal)
}

func TestGenerateReportsError(t *testing.T) {
	boom := errors.New("boom")
	r := Runner{Generator: &fakeGenerator{err: boom}}

	msg := r.Generate(studio.Ticket{Seq: 1})().(GenerationDoneMsg)
	assert.ErrorIs(t, msg.Err, boom)
	assert.Nil(t, msg.Path)
}

func TestChatCarriesPanelAndTicket(t *testing.T) {
	chatter := &fakeChatter{}
	r := Runner{Chatter: chatter}
	path := curriculum.SamplePath(curriculum.Profile{Goal: "Chess"})
	panel := tutor.NewPanel(path.Topic)
	tk, ok := panel.Send("What is castling?")
	require.True(t, ok)

	msg := r.Chat(panel, tk, path)().(ChatReplyMsg)
	assert.Same(t, panel, msg.Panel)
	assert.Equal(t, tk, msg.Ticket)
	assert.Equal(t, "Great question.", msg.Reply)
	assert.Equal(t, "What is castling?", chatter.question)
	assert.Equal(t, "Chess", chatter.topic)
}
