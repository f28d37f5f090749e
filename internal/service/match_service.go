package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/crib-match-backend/internal/archive"
	"github.com/shinyyama/crib-match-backend/internal/matching"
	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/shinyyama/crib-match-backend/internal/reqctx"
	"github.com/shinyyama/crib-match-backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const DefaultMatchBatchSize = 50

// MatchRun summarizes one regeneration of the match table.
type MatchRun struct {
	ID        string
	Renters   int
	Landlords int
	Matches   []model.Match
	Duration  time.Duration
}

// UserMatch is a match seen from one side of the pair.
type UserMatch struct {
	MatchID            string    `json:"match_id"`
	Role               string    `json:"role"`
	CounterpartID      string    `json:"counterpart_id"`
	CompatibilityScore float64   `json:"compatibility_score"`
	MatchPercentage    int       `json:"match_percentage"`
	CreatedAt          time.Time `json:"created_at"`
}

const (
	RoleRenter   = "renter"
	RoleLandlord = "landlord"
)

type MatchService interface {
	Run(ctx context.Context) (*MatchRun, error)
	ListAll(ctx context.Context) ([]model.Match, error)
	ListForUser(ctx context.Context, uid string) ([]UserMatch, error)
}

type matchService struct {
	prefRepo  repository.PreferenceRepository
	matchRepo repository.MatchRepository
	archiver  archive.Archiver
	batchSize int
	log       *zap.Logger

	mu sync.Mutex
}

// NewMatchService wires the scorer to its stores. archiver may be nil.
func NewMatchService(prefRepo repository.PreferenceRepository, matchRepo repository.MatchRepository, archiver archive.Archiver, batchSize int, log *zap.Logger) MatchService {
	if batchSize <= 0 {
		batchSize = DefaultMatchBatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &matchService{
		prefRepo:  prefRepo,
		matchRepo: matchRepo,
		archiver:  archiver,
		batchSize: batchSize,
		log:       log,
	}
}

// Run rescores every renter/landlord pair and replaces the stored match set.
// The returned matches are ordered by score, highest first.
func (s *matchService) Run(ctx context.Context) (*MatchRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	var (
		renters   []model.RenterPreference
		landlords []model.LandlordPreference
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		renters, err = s.prefRepo.ListRenters(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		landlords, err = s.prefRepo.ListLandlords(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatchFetch, err)
	}

	pairs := matching.ScoreAll(renters, landlords)
	now := time.Now().UTC()
	matches := make([]model.Match, 0, len(pairs))
	for _, p := range pairs {
		matches = append(matches, model.Match{
			ID:                 uuid.NewString(),
			RenterID:           p.RenterID,
			LandlordID:         p.LandlordID,
			CompatibilityScore: p.Score,
			CreatedAt:          now,
		})
	}

	if err := s.matchRepo.ReplaceAll(ctx, matches, s.batchSize); err != nil {
		s.log.Error("match run failed", append(reqctx.Fields(ctx), zap.Error(err))...)
		return nil, err
	}

	run := &MatchRun{
		ID:        uuid.NewString(),
		Renters:   len(renters),
		Landlords: len(landlords),
		Matches:   matches,
		Duration:  time.Since(start),
	}
	if s.archiver != nil {
		if err := s.archiver.Put(ctx, run.ID, matches); err != nil {
			s.log.Warn("archive match run", append(reqctx.Fields(ctx), zap.String("run_id", run.ID), zap.Error(err))...)
		}
	}
	s.log.Info("match run complete", append(reqctx.Fields(ctx),
		zap.String("run_id", run.ID),
		zap.Int("renters", run.Renters),
		zap.Int("landlords", run.Landlords),
		zap.Int("matches", len(matches)),
		zap.Duration("took", run.Duration),
	)...)
	return run, nil
}

func (s *matchService) ListAll(ctx context.Context) ([]model.Match, error) {
	list, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Match{}
	}
	return list, nil
}

// ListForUser returns the caller's matches. A user with both preference kinds is treated as a renter.
func (s *matchService) ListForUser(ctx context.Context, uid string) ([]UserMatch, error) {
	if uid == "" {
		return nil, ErrInvalidInput
	}
	rp, err := s.prefRepo.FindRenterByUser(ctx, uid)
	switch {
	case err == nil:
		list, err := s.matchRepo.ListByRenter(ctx, rp.ID)
		if err != nil {
			return nil, err
		}
		return toUserMatches(list, RoleRenter), nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	lp, err := s.prefRepo.FindLandlordByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	list, err := s.matchRepo.ListByLandlord(ctx, lp.ID)
	if err != nil {
		return nil, err
	}
	return toUserMatches(list, RoleLandlord), nil
}

func toUserMatches(list []model.Match, role string) []UserMatch {
	out := make([]UserMatch, 0, len(list))
	for _, m := range list {
		counterpart := m.LandlordID
		if role == RoleLandlord {
			counterpart = m.RenterID
		}
		out = append(out, UserMatch{
			MatchID:            m.ID,
			Role:               role,
			CounterpartID:      counterpart,
			CompatibilityScore: m.CompatibilityScore,
			MatchPercentage:    int(math.Floor(m.CompatibilityScore)),
			CreatedAt:          m.CreatedAt,
		})
	}
	return out
}
