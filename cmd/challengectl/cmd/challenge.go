package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/pomodoro-challenge/internal/app"
)

func ChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Start, advance and end challenges",
	}

	cmd.AddCommand(challengeStartCmd())
	cmd.AddCommand(challengeNextCmd())
	cmd.AddCommand(challengeEndCmd())
	cmd.AddCommand(challengeWeeksCmd())
	return cmd
}

func challengeStartCmd() *cobra.Command {
	var (
		serverID   uint64
		name       string
		start      string
		thread     uint64
		goalThread uint64
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a challenge with its goal collection week",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
			}

			return withApp(func(ctx context.Context, a *app.App) error {
				challenge, week, err := a.ChallengeService.Start(ctx, serverID, name, startDate, thread, optionalID(goalThread))
				if err != nil {
					return err
				}
				return printJSON(map[string]any{"challenge": challenge, "week": week})
			})
		},
	}

	cmd.Flags().Uint64Var(&serverID, "server", 0, "chat server id")
	cmd.Flags().StringVar(&name, "name", "", "challenge name")
	cmd.Flags().StringVar(&start, "start", "", "first day of week 1 (YYYY-MM-DD)")
	cmd.Flags().Uint64Var(&thread, "thread", 0, "sign-up thread id")
	cmd.Flags().Uint64Var(&goalThread, "goal-thread", 0, "goal declaration thread id")
	_ = cmd.MarkFlagRequired("server")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("thread")
	return cmd
}

func challengeNextCmd() *cobra.Command {
	var (
		thread     uint64
		goalThread uint64
	)

	cmd := &cobra.Command{
		Use:   "next <challenge-id>",
		Short: "Open the next week of a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				week, err := a.ChallengeService.NextWeek(ctx, args[0], thread, optionalID(goalThread))
				if err != nil {
					return err
				}
				return printJSON(week)
			})
		},
	}

	cmd.Flags().Uint64Var(&thread, "thread", 0, "week thread id")
	cmd.Flags().Uint64Var(&goalThread, "goal-thread", 0, "goal declaration thread id")
	_ = cmd.MarkFlagRequired("thread")
	return cmd
}

func challengeEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <challenge-id>",
		Short: "Stop counting live messages for a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				return a.ChallengeService.End(ctx, args[0])
			})
		},
	}
}

func challengeWeeksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weeks <challenge-id>",
		Short: "List the weeks of a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				weeks, err := a.ChallengeService.Weeks(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(weeks)
			})
		},
	}
}
