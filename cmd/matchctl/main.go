package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shinyyama/crib-match-backend/internal/config"
	"github.com/shinyyama/crib-match-backend/internal/db"
	"github.com/shinyyama/crib-match-backend/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

// open connects on first use so --help works without a database.
func (a *app) open() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	conn, err := db.Connect(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	a.db = conn
	return conn, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "matchctl",
		Short:         "Operate the crib-match database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Console: true})
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
	}
	root.AddCommand(
		migrateCmd(a),
		seedCmd(a),
		runCmd(a),
		tokensCmd(a),
	)
	return root
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "matchctl:", err)
		os.Exit(1)
	}
}
