package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/pomodoro-challenge/internal/app"
	"github.com/templui/pomodoro-challenge/internal/model"
)

func RescanCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "rescan <week-id>",
		Short: "Reprocess exported message history of a week",
		Long: `Reads a JSON array of {"message_id","user_id","content"} objects,
oldest first, and forces each through the ledger in batches of RESCAN_BATCH_SIZE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := readMessages(file)
			if err != nil {
				return err
			}

			return withApp(func(ctx context.Context, a *app.App) error {
				res, err := a.RescanService.RunBatches(ctx, args[0], pager(messages, a.Cfg.RescanBatchSize))
				if printErr := printJSON(res); printErr != nil {
					return printErr
				}
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "history file, - for stdin")
	return cmd
}

func readMessages(file string) ([]model.RescanMessage, error) {
	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var messages []model.RescanMessage
	if err := json.NewDecoder(r).Decode(&messages); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return messages, nil
}

// pager hands out messages size at a time.
func pager(messages []model.RescanMessage, size int) func(context.Context) ([]model.RescanMessage, error) {
	return func(context.Context) ([]model.RescanMessage, error) {
		n := min(size, len(messages))
		page := messages[:n]
		messages = messages[n:]
		return page, nil
	}
}
