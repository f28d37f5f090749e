package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shinyyama/crib-match-backend/internal/archive"
	"github.com/shinyyama/crib-match-backend/internal/config"
	"github.com/shinyyama/crib-match-backend/internal/db"
	"github.com/shinyyama/crib-match-backend/internal/logger"
	appmw "github.com/shinyyama/crib-match-backend/internal/middleware"
	"github.com/shinyyama/crib-match-backend/internal/scheduler"
	"github.com/shinyyama/crib-match-backend/internal/server"
	"go.uber.org/zap"
)

var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load error", zap.Error(err))
	}
	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Console: true})
	if err != nil {
		zap.NewExample().Fatal("logger init error", zap.Error(err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := server.Options{
		Logger:       log,
		BatchSize:    cfg.MatchBatchSize,
		RequireReply: cfg.TokenRequireReply,
		GitSHA:       gitSHA,
		BuildTime:    buildTime,
	}
	if cfg.FirebaseProjectID != "" {
		authMw, err := appmw.NewAuthMiddleware(ctx, cfg.FirebaseProjectID)
		if err != nil {
			log.Fatal("failed to init firebase auth", zap.Error(err))
		}
		opts.Identity = authMw
	} else {
		log.Warn("FIREBASE_PROJECT_ID not set; trusting X-User-ID header")
	}
	if cfg.MatchArchiveBucket != "" {
		arch, err := archive.NewGCSArchiver(ctx, cfg.MatchArchiveBucket)
		if err != nil {
			log.Fatal("failed to init match archive", zap.Error(err))
		}
		defer arch.Close()
		opts.Archiver = arch
	}

	srv := server.New(nil, opts)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(":" + cfg.Port)
	}()

	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Error("db connect error", zap.Error(err))
			return
		}
		if err := db.Migrate(conn); err != nil {
			log.Error("auto migrate error", zap.Error(err))
		}
		srv.SetDB(conn)
		log.Info("database ready", zap.String("driver", cfg.DBDriver))
	}()

	var sched *scheduler.Scheduler
	if cfg.MatchInterval > 0 {
		sched, err = scheduler.New(cfg.MatchInterval, srv.RunMatching, log)
		if err != nil {
			log.Fatal("failed to init scheduler", zap.Error(err))
		}
		sched.Start()
	}

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			log.Warn("scheduler shutdown", zap.Error(err))
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown", zap.Error(err))
	}
}
