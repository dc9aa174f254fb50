package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/templui/pomodoro-challenge/internal/app"
)

func GoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Weekly goals",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <week-id> <user-id> <points>",
		Short: "Declare a user's goal for a week",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user id", args[1])
			if err != nil {
				return err
			}
			points, err := strconv.Atoi(args[2])
			if err != nil {
				return err
			}

			return withApp(func(ctx context.Context, a *app.App) error {
				goal, err := a.GoalService.Declare(ctx, userID, args[0], points)
				if err != nil {
					return err
				}
				return printJSON(goal)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list <week-id>",
		Short: "List goals of a week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				goals, err := a.GoalService.Goals(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(goals)
			})
		},
	})

	return cmd
}
