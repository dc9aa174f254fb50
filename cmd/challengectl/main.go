package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/pomodoro-challenge/cmd/challengectl/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "challengectl",
		Short:        "Administer pomodoro challenges, catalogs, rescans and leaderboards",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.ChallengeCmd())
	rootCmd.AddCommand(cmd.EmojiCmd())
	rootCmd.AddCommand(cmd.GoalCmd())
	rootCmd.AddCommand(cmd.RescanCmd())
	rootCmd.AddCommand(cmd.LeaderboardCmd())
	rootCmd.AddCommand(cmd.TokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
