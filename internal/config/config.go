// Package config loads EduStream settings from an optional YAML file,
// a .env file, EDUSTREAM_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/edustream/internal/llm"
	"github.com/abhisek/edustream/internal/logging"
)

// Config is the resolved application configuration.
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	Log     LogConfig     `mapstructure:"log"`
	DB      string        `mapstructure:"db"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LLMConfig selects the provider and tunes requests.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // empty = discover from keys
	Model       string        `mapstructure:"model"`    // empty = provider default
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`  // 0 = per-request default
	Temperature float64       `mapstructure:"temperature"` // 0 = per-request default
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // empty = disabled
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"provider":     "llm.provider",
	"model":        "llm.model",
	"timeout":      "llm.timeout",
	"db":           "db",
	"log-level":    "log.level",
	"log-file":     "log.file",
	"metrics-addr": "metrics.addr",
}

// Load resolves configuration. Precedence, highest first: flags that were
// set, EDUSTREAM_* environment variables (including those from .env), the
// config file, defaults. file may be empty to use DefaultFile when present.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("EDUSTREAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readFile(v, file); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", llm.DefaultConfig().Timeout)
	v.SetDefault("llm.max_tokens", 0)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("db", "")
	v.SetDefault("metrics.addr", "")
}

func readFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
		return nil
	}

	path, err := DefaultFile()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// DefaultFile resolves the config file path:
// 1. $XDG_CONFIG_HOME/edustream/config.yaml
// 2. ~/.config/edustream/config.yaml
func DefaultFile() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "edustream", "config.yaml"), nil
}

// Provider builds the llm.Config: keys come from the environment, the
// provider is discovered when not set, and a missing credential fails here
// rather than at the first request.
func (c *Config) Provider() (llm.Config, error) {
	out := llm.DefaultConfig()
	out.LoadKeys()

	switch c.LLM.Provider {
	case "":
		if !out.Discover() {
			return out, &llm.ErrMissingCredential{
				Provider: llm.ProviderGemini,
				EnvVar:   "GEMINI_API_KEY",
			}
		}
	default:
		out.Provider = strings.ToLower(c.LLM.Provider)
	}

	out.SetModel(c.LLM.Model)
	if c.LLM.Timeout > 0 {
		out.Timeout = c.LLM.Timeout
	}

	if err := out.Validate(); err != nil {
		return out, err
	}
	return out, nil
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	out := logging.DefaultConfig()
	out.Level = c.Log.Level
	out.File = c.Log.File
	return out
}
