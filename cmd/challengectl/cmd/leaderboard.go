package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/pomodoro-challenge/internal/app"
	"github.com/templui/pomodoro-challenge/internal/model"
)

func LeaderboardCmd() *cobra.Command {
	var post bool

	cmd := &cobra.Command{
		Use:   "leaderboard <week-id>",
		Short: "Print the leaderboard report of a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				report := a.LeaderboardService.Generate(ctx, args[0])
				if err := printJSON(report); err != nil {
					return err
				}
				if report.Kind == model.ReportError {
					return fmt.Errorf("leaderboard for week %s failed", args[0])
				}
				if post {
					return a.LeaderboardService.MarkPosted(ctx, args[0], report)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&post, "post", false, "archive the report and mark the week as posted")
	return cmd
}
