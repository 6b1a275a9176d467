// Package curriculum turns a learner profile into a learning path with one
// structured request to the generative service.
package curriculum

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/edustream/internal/llm"
)

// Generator produces a learning path for a profile.
type Generator interface {
	Generate(ctx context.Context, profile Profile) (*LearningPath, error)
}

// LLMGenerator implements Generator over an llm.Provider. Every call issues
// exactly one request; nothing is cached, retried or deduplicated.
type LLMGenerator struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewGenerator creates a generator. A nil logger discards output.
func NewGenerator(provider llm.Provider, cfg Config, logger *zap.Logger) *LLMGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, cfg: cfg, logger: logger}
}

// Generate validates the profile, requests a path and checks its modules.
// Profile problems come back as *ValidationError with no request made;
// everything else is a *GenerationError.
func (g *LLMGenerator) Generate(ctx context.Context, profile Profile) (*LearningPath, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeLearningPath)
	start := time.Now()

	req := llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(profile)),
		Schema:      LearningPathSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, g.fail(profile, err)
	}

	var path LearningPath
	if err := json.Unmarshal(resp.Content, &path); err != nil {
		return nil, g.fail(profile, &llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}
	if err := CheckPath(&path); err != nil {
		return nil, g.fail(profile, err)
	}

	g.logger.Info("learning path generated",
		zap.String("goal", profile.Goal),
		zap.String("topic", path.Topic),
		zap.Int("modules", len(path.Modules)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &path, nil
}

func (g *LLMGenerator) fail(profile Profile, err error) error {
	g.logger.Warn("learning path generation failed",
		zap.String("goal", profile.Goal),
		zap.Error(err),
	)
	return &GenerationError{Err: err}
}
