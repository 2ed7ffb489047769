package main

import (
	"fmt"
	"time"

	"github.com/nutrishop/shop-manager/config"
	"github.com/nutrishop/shop-manager/internal/apisrv/auth"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("cannot load a config %v", err.Error())
			}
			as, err := auth.New(&cfg.Auth)
			if err != nil {
				return err
			}
			if role == "" {
				role = cfg.Auth.AdminRole
			}
			tok, err := as.IssueToken(subject, role, ttl)
			if err != nil {
				return fmt.Errorf("cannot issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "token subject")
	cmd.Flags().StringVar(&role, "role", "", "role claim (defaults to auth.admin_role)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
