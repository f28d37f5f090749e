package main

import (
	"fmt"

	"github.com/shinyyama/crib-match-backend/internal/archive"
	"github.com/shinyyama/crib-match-backend/internal/repository"
	"github.com/shinyyama/crib-match-backend/internal/service"
	"github.com/spf13/cobra"
)

func runCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Regenerate all matches once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := a.open()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var arch archive.Archiver
			if a.cfg.MatchArchiveBucket != "" {
				gcs, err := archive.NewGCSArchiver(ctx, a.cfg.MatchArchiveBucket)
				if err != nil {
					return err
				}
				defer gcs.Close()
				arch = gcs
			}
			svc := service.NewMatchService(
				repository.NewPreferenceRepository(conn),
				repository.NewMatchRepository(conn),
				arch, a.cfg.MatchBatchSize, a.log,
			)
			run, err := svc.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d renters x %d landlords = %d matches in %s\n",
				run.ID, run.Renters, run.Landlords, len(run.Matches), run.Duration)
			return nil
		},
	}
}
