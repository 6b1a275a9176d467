// Package tutor answers learner questions about the active learning path
// and keeps the chat transcript.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/llm"
)

// Chatter answers one question grounded on a path.
type Chatter interface {
	// Chat returns the reply text. An empty reply with a nil error means
	// the service answered with nothing.
	Chat(ctx context.Context, message string, path *curriculum.LearningPath) (string, error)
}

// Config holds tuning parameters for tutor replies.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}

// Mentor implements Chatter over an llm.Provider. Each call carries only
// the path topic and the question; no history is sent.
type Mentor struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewMentor creates a Mentor. A nil logger discards output.
func NewMentor(provider llm.Provider, cfg Config, logger *zap.Logger) *Mentor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mentor{provider: provider, cfg: cfg, logger: logger}
}

const systemPrompt = `You are the EduStream Academy Tutor. Answer in a way that suits the student's level. Be encouraging, use examples, and keep it educational.`

func buildUserMessage(topic, message string) string {
	return fmt.Sprintf(`You are helping a student master %q.
The student's curriculum is for %s.
Question: %s`, topic, topic, message)
}

func (m *Mentor) Chat(ctx context.Context, message string, path *curriculum.LearningPath) (string, error) {
	topic := ""
	if path != nil {
		topic = path.Topic
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeTutorChat)
	resp, err := m.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(topic, message)),
		MaxTokens:   m.cfg.MaxTokens,
		Temperature: m.cfg.Temperature,
	})
	if errors.Is(err, llm.ErrEmptyResponse) {
		m.logger.Info("tutor returned an empty reply", zap.String("topic", topic))
		return "", nil
	}
	if err != nil {
		m.logger.Warn("tutor request failed", zap.String("topic", topic), zap.Error(err))
		return "", fmt.Errorf("tutor chat: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
