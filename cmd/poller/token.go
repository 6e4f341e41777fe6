package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/auth"
)

func newTokenCommand(a *app) *cobra.Command {
	var userID uint64

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for a user, signed with auth.jwt_secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Auth.Validate(); err != nil {
				return err
			}
			token, err := auth.NewTokenManager(a.cfg.Auth, a.timeProvider).Issue(userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&userID, "user-id", 0, "user id placed in the token subject")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
