package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd)
	},
}

func init() {
	playCmd.Flags().String("topic", "", "Pin the session to one topic (see 'mathgen topics')")
	playCmd.Flags().Bool("typed", false, "Type answers instead of picking from multiple choice")
}
