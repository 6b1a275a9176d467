package curriculum

// Config holds tuning parameters for learning path generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns production defaults. A six-unit roadmap with
// activities and resources runs to several thousand tokens.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}
