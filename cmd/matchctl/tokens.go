package main

import (
	"fmt"

	"github.com/shinyyama/crib-match-backend/internal/repository"
	"github.com/shinyyama/crib-match-backend/internal/service"
	"github.com/spf13/cobra"
)

func tokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <uid>",
		Short: "Print a user's token balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.open()
			if err != nil {
				return err
			}
			svc := service.NewTokenService(
				repository.NewTokenRepository(conn),
				repository.NewChatRepository(conn),
				a.cfg.TokenRequireReply, a.log,
			)
			bal, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tokens (%d earned)\n", args[0], bal.Tokens, bal.TotalEarned)
			return nil
		},
	}
}
