package main

import (
	"github.com/shinyyama/crib-match-backend/internal/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.open()
			if err != nil {
				return err
			}
			if err := db.Migrate(conn); err != nil {
				return err
			}
			a.log.Info("migrated", zap.String("driver", a.cfg.DBDriver))
			return nil
		},
	}
}
