package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds a single request. There is no retry, so this is also
	// the longest a learner waits for one generation or chat turn.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Timeout: 60 * time.Second,
	}
}

// envKeys lists the provider-specific API key variables, then the
// standard variable each vendor's own tooling uses.
var envKeys = map[string][2]string{
	ProviderGemini:     {"EDUSTREAM_GEMINI_API_KEY", "GEMINI_API_KEY"},
	ProviderOpenAI:     {"EDUSTREAM_OPENAI_API_KEY", "OPENAI_API_KEY"},
	ProviderAnthropic:  {"EDUSTREAM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	ProviderOpenRouter: {"EDUSTREAM_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
}

// discoveryOrder is the order standard keys are probed when no provider
// was chosen explicitly.
var discoveryOrder = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

// LoadKeys fills API keys from the environment. Explicit EDUSTREAM_* keys
// win over the vendor-standard ones.
func (c *Config) LoadKeys() {
	c.Gemini.APIKey = firstEnv(envKeys[ProviderGemini])
	c.OpenAI.APIKey = firstEnv(envKeys[ProviderOpenAI])
	c.Anthropic.APIKey = firstEnv(envKeys[ProviderAnthropic])
	c.OpenRouter.APIKey = firstEnv(envKeys[ProviderOpenRouter])
}

// Discover picks the first provider that has a key, in the order
// Gemini → OpenAI → Anthropic → OpenRouter. Returns false if none has one.
func (c *Config) Discover() bool {
	for _, p := range discoveryOrder {
		if c.apiKey(p) != "" {
			c.Provider = p
			return true
		}
	}
	return false
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case ProviderGemini:
		c.Gemini.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	}
}

// Validate checks that the selected provider has its required API key set,
// so a missing credential fails at startup instead of at the first request.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter:
		if c.apiKey(c.Provider) == "" {
			return &ErrMissingCredential{Provider: c.Provider, EnvVar: envKeys[c.Provider][0]}
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("LLM timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func (c Config) apiKey(provider string) string {
	switch provider {
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	}
	return ""
}

func firstEnv(names [2]string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
