package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gosimple/slug"
	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/shinyyama/crib-match-backend/internal/reqctx"
	"github.com/shinyyama/crib-match-backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	UnlockBonus  int64 = 5
	MessageBonus int64 = 1
)

type Balance struct {
	Tokens      int64 `json:"tokens"`
	TotalEarned int64 `json:"total_earned"`
}

type DebitRequest struct {
	UserID     string
	Feature    string
	Cost       int64
	PropertyID *string
	ProfileID  *string
}

type TokenService interface {
	Get(ctx context.Context, uid string) (Balance, error)
	CreditUnlockBonus(ctx context.Context, uid string) error
	CreditMessageBonus(ctx context.Context, uid, chatID string) (bool, error)
	DebitForFeature(ctx context.Context, req DebitRequest) (int64, error)
	ListUnlocked(ctx context.Context, uid string) ([]model.UnlockedFeature, error)
}

type tokenService struct {
	repo         repository.TokenRepository
	chatRepo     repository.ChatRepository
	requireReply bool
	log          *zap.Logger
}

// NewTokenService builds the ledger. With requireReply set, message bonuses are only
// granted once someone other than the caller has written in the chat.
func NewTokenService(repo repository.TokenRepository, chatRepo repository.ChatRepository, requireReply bool, log *zap.Logger) TokenService {
	if log == nil {
		log = zap.NewNop()
	}
	return &tokenService{repo: repo, chatRepo: chatRepo, requireReply: requireReply, log: log}
}

func (s *tokenService) Get(ctx context.Context, uid string) (Balance, error) {
	acct, err := s.repo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Balance{}, nil
		}
		return Balance{}, storeErr("get", err)
	}
	return Balance{Tokens: acct.Tokens, TotalEarned: acct.TotalEarned}, nil
}

func (s *tokenService) CreditUnlockBonus(ctx context.Context, uid string) error {
	if uid == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Credit(ctx, uid, UnlockBonus); err != nil {
		return storeErr("credit", err)
	}
	s.log.Info("unlock bonus credited", append(reqctx.Fields(ctx), zap.String("user_id", uid), zap.Int64("tokens", UnlockBonus))...)
	return nil
}

// CreditMessageBonus reports whether a token was granted.
func (s *tokenService) CreditMessageBonus(ctx context.Context, uid, chatID string) (bool, error) {
	if uid == "" || chatID == "" {
		return false, ErrInvalidInput
	}
	chat, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, storeErr("find chat", err)
	}
	if s.requireReply {
		if !chat.HasParticipant(uid) {
			return false, nil
		}
		n, err := s.chatRepo.CountMessagesNotFrom(ctx, chat.ID, uid)
		if err != nil {
			return false, storeErr("count replies", err)
		}
		if n == 0 {
			return false, nil
		}
	}
	if err := s.repo.Credit(ctx, uid, MessageBonus); err != nil {
		return false, storeErr("credit", err)
	}
	return true, nil
}

// DebitForFeature spends req.Cost tokens and returns the remaining balance.
func (s *tokenService) DebitForFeature(ctx context.Context, req DebitRequest) (int64, error) {
	req.Feature = strings.TrimSpace(req.Feature)
	if req.UserID == "" || req.Feature == "" || req.Cost <= 0 {
		return 0, ErrInvalidInput
	}
	entry := &model.UnlockedFeature{
		UserID:     req.UserID,
		PropertyID: req.PropertyID,
		ProfileID:  req.ProfileID,
		Feature:    req.Feature,
		FeatureKey: slug.Make(req.Feature),
		TokensUsed: req.Cost,
	}
	remaining, err := s.repo.Debit(ctx, entry)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInsufficientTokens
		}
		return 0, storeErr("debit", err)
	}
	s.log.Info("feature unlocked", append(reqctx.Fields(ctx),
		zap.String("user_id", req.UserID),
		zap.String("feature", entry.FeatureKey),
		zap.Int64("cost", req.Cost),
		zap.Int64("remaining", remaining),
	)...)
	return remaining, nil
}

func (s *tokenService) ListUnlocked(ctx context.Context, uid string) ([]model.UnlockedFeature, error) {
	list, err := s.repo.ListFeatures(ctx, uid)
	if err != nil {
		return nil, storeErr("list features", err)
	}
	if list == nil {
		list = []model.UnlockedFeature{}
	}
	return list, nil
}
