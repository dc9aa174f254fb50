package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/pomodoro-challenge/internal/config"
	"github.com/templui/pomodoro-challenge/internal/service"
)

func TokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <subject>",
		Short: "Mint an admin API token for a bot or operator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			auth := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry, cfg.AppName)

			token, expiry, err := auth.GenerateJWT(args[0])
			if err != nil {
				return err
			}

			fmt.Println(token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expiry.Format(time.RFC3339))
			return nil
		},
	}
}
