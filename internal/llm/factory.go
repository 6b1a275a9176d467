package llm

import (
	"context"
	"fmt"
	"time"
)

// NewProvider creates a Provider from configuration, wrapped with the
// timeout and audit middleware.
func NewProvider(ctx context.Context, cfg Config, audit Audit) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if audit.Provider == "" {
		audit.Provider = cfg.Provider
	}
	return Wrap(base, cfg.Timeout, audit), nil
}

// Wrap applies the standard middleware: caller → timeout → logging → base.
func Wrap(base Provider, timeout time.Duration, audit Audit) Provider {
	return WithTimeout(WithLogging(base, audit), timeout)
}
