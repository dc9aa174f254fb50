package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/templui/pomodoro-challenge/internal/app"
	"github.com/templui/pomodoro-challenge/internal/model"
)

func EmojiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emoji",
		Short: "Manage the emoji catalog",
	}

	cmd.AddCommand(emojiAddCmd())
	cmd.AddCommand(emojiListCmd())
	cmd.AddCommand(emojiRetireCmd())
	return cmd
}

func emojiAddCmd() *cobra.Command {
	var (
		serverID    uint64
		challengeID string
		category    string
		points      int
	)

	cmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Add an emoji (glyph, :shortcode: or <:custom:id>) to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := model.ParseCategory(category)
			if err != nil {
				return err
			}

			var scope *string
			if challengeID != "" {
				scope = &challengeID
			}

			return withApp(func(ctx context.Context, a *app.App) error {
				e, err := a.CatalogService.AddEmoji(ctx, serverID, scope, args[0], cat, points)
				if err != nil {
					return err
				}
				return printJSON(e)
			})
		},
	}

	cmd.Flags().Uint64Var(&serverID, "server", 0, "chat server id")
	cmd.Flags().StringVar(&challengeID, "challenge", "", "limit the row to one challenge (default: server-wide)")
	cmd.Flags().StringVar(&category, "category", "", "pomodoro, bonus, goal or reward")
	cmd.Flags().IntVar(&points, "points", 1, "points per occurrence")
	_ = cmd.MarkFlagRequired("server")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func emojiListCmd() *cobra.Command {
	var serverID uint64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog rows of a server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				emojis, err := a.CatalogService.List(ctx, serverID)
				if err != nil {
					return err
				}
				return printJSON(emojis)
			})
		},
	}

	cmd.Flags().Uint64Var(&serverID, "server", 0, "chat server id")
	_ = cmd.MarkFlagRequired("server")
	return cmd
}

func emojiRetireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retire <emoji-id>",
		Short: "Deactivate a catalog row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				return a.CatalogService.Retire(ctx, args[0])
			})
		},
	}
}
