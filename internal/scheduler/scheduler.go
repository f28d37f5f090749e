// Package scheduler runs the match regeneration on a fixed interval.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/shinyyama/crib-match-backend/internal/reqctx"
	"go.uber.org/zap"
)

const matchJobName = "match-run"

// RunFunc is one matching run. It reports how many matches were written.
type RunFunc func(ctx context.Context) (int, error)

type Scheduler struct {
	sched gocron.Scheduler
	log   *zap.Logger
}

// New schedules run every interval. A run still in progress when the next one is due
// causes that tick to be skipped.
func New(interval time.Duration, run RunFunc, log *zap.Logger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx := reqctx.WithRID(context.Background(), "sched-"+uuid.NewString())
			n, err := run(ctx)
			if err != nil {
				log.Error("scheduled match run failed", append(reqctx.Fields(ctx), zap.Error(err))...)
				return
			}
			log.Info("scheduled match run", append(reqctx.Fields(ctx), zap.Int("matches", n))...)
		}),
		gocron.WithName(matchJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}
	return &Scheduler{sched: sched, log: log}, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
	s.log.Info("scheduler started", zap.String("job", matchJobName))
}

// Shutdown waits for a running job to finish.
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
