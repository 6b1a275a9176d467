package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/edustream/internal/app"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Generator: e.generator(),
		Chatter:   e.mentor(),
		Logger:    e.logger,
	})
}
