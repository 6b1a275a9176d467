package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edustream/internal/llm"
)

// isolate clears every variable Load and Provider read, and points the
// config home at an empty directory.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"EDUSTREAM_LLM_PROVIDER", "EDUSTREAM_LLM_MODEL", "EDUSTREAM_LLM_TIMEOUT",
		"EDUSTREAM_LLM_MAX_TOKENS", "EDUSTREAM_LLM_TEMPERATURE",
		"EDUSTREAM_LOG_LEVEL", "EDUSTREAM_LOG_FILE", "EDUSTREAM_DB", "EDUSTREAM_METRICS_ADDR",
		"EDUSTREAM_GEMINI_API_KEY", "GEMINI_API_KEY",
		"EDUSTREAM_OPENAI_API_KEY", "OPENAI_API_KEY",
		"EDUSTREAM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY",
		"EDUSTREAM_OPENROUTER_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "", cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.Metrics.Addr)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	isolate(t)

	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
llm:
  provider: openai
  model: gpt-4o
  timeout: 30s
  max_tokens: 4000
log:
  level: debug
metrics:
  addr: ":9100"
`), 0o644))

	t.Setenv("EDUSTREAM_LLM_MODEL", "gpt-4o-mini")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("provider", "", "")
	flags.String("db", "", "")
	require.NoError(t, flags.Parse([]string{"--db", "/tmp/edu.db"}))

	cfg, err := Load(file, flags)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider, "unset flag must not override the file")
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model, "env wins over file")
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 4000, cfg.LLM.MaxTokens)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
	assert.Equal(t, "/tmp/edu.db", cfg.DB, "set flag wins")
}

func TestLoadDefaultFile(t *testing.T) {
	isolate(t)
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, "edustream")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  level: warn\n"), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestProviderDiscovery(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := &Config{}
	out, err := cfg.Provider()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, out.Provider)
	assert.Equal(t, "sk-test", out.OpenAI.APIKey)
	assert.Equal(t, 60*time.Second, out.Timeout)
}

func TestProviderMissingCredential(t *testing.T) {
	isolate(t)

	cfg := &Config{LLM: LLMConfig{Provider: "anthropic"}}
	_, err := cfg.Provider()

	var missing *llm.ErrMissingCredential
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, "EDUSTREAM_ANTHROPIC_API_KEY", missing.EnvVar)
}

func TestProviderNoKeysAtAll(t *testing.T) {
	isolate(t)

	_, err := (&Config{}).Provider()
	var missing *llm.ErrMissingCredential
	require.True(t, errors.As(err, &missing), "got %v", err)
}

func TestProviderOverrides(t *testing.T) {
	isolate(t)

	cfg := &Config{LLM: LLMConfig{Provider: "Mock", Model: "ignored", Timeout: 5 * time.Second}}
	out, err := cfg.Provider()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderMock, out.Provider)
	assert.Equal(t, 5*time.Second, out.Timeout)
}

func TestLogging(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "debug", File: "/tmp/x.log"}}
	out := cfg.Logging()
	assert.Equal(t, "debug", out.Level)
	assert.Equal(t, "/tmp/x.log", out.File)
	assert.Positive(t, out.MaxSizeMB)
}
