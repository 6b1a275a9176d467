package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edustream/internal/curriculum"
	"github.com/abhisek/edustream/internal/tutor"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the tutor one question about a topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		topic = strings.TrimSpace(topic)
		if topic == "" {
			return fmt.Errorf("--topic is required")
		}

		e, err := setup(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		question := strings.Join(args, " ")
		reply, err := e.mentor().Chat(cmd.Context(), question, &curriculum.LearningPath{Topic: topic})
		if err != nil {
			return fmt.Errorf("%s: %w", tutor.ConnectionMessage, err)
		}
		if reply == "" {
			reply = tutor.EmptyReplyMessage
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

func init() {
	askCmd.Flags().String("topic", "", "Topic the question is about (required)")
}
