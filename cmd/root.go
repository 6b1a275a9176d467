package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "edustream",
	Short: "AI learning path planner and tutor",
	Long: "EduStream builds a personalised learning path from a short learner profile, " +
		"tracks module completion and answers questions through an AI tutor.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/edustream/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides EDUSTREAM_DB env var)")
	pf.String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter or mock")
	pf.String("model", "", "Model name for the selected provider")
	pf.Duration("timeout", 60*time.Second, "Per-request LLM timeout")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Log file (default $XDG_STATE_HOME/edustream/edustream.log)")
	pf.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
