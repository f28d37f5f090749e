package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shinyyama/crib-match-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenRepository interface {
	Get(ctx context.Context, uid string) (*model.TokenAccount, error)
	Credit(ctx context.Context, uid string, tokens int64) error
	Debit(ctx context.Context, entry *model.UnlockedFeature) (int64, error)
	ListFeatures(ctx context.Context, uid string) ([]model.UnlockedFeature, error)
	SetDB(db *gorm.DB)
}

type tokenRepository struct {
	dbHolder
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	r := &tokenRepository{}
	r.SetDB(db)
	return r
}

// Get returns gorm.ErrRecordNotFound when the user has never been credited.
func (r *tokenRepository) Get(ctx context.Context, uid string) (*model.TokenAccount, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var acct model.TokenAccount
	if err := db.WithContext(ctx).Where("user_id = ?", uid).First(&acct).Error; err != nil {
		return nil, err
	}
	return &acct, nil
}

// Credit adds tokens to both the balance and the lifetime counter in a single upsert.
func (r *tokenRepository) Credit(ctx context.Context, uid string, tokens int64) error {
	db := r.conn()
	if db == nil {
		return ErrDBNotReady
	}
	if tokens <= 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(creditOnConflict(tokens, db.NowFunc())).
		Create(&model.TokenAccount{UserID: uid, Tokens: tokens, TotalEarned: tokens}).Error
}

// creditOnConflict increments the existing row. Columns are table-qualified because
// Postgres also has EXCLUDED in scope and rejects a bare "tokens".
func creditOnConflict(tokens int64, now time.Time) clause.OnConflict {
	table := model.TokenAccount{}.TableName()
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"tokens":       gorm.Expr(table+".tokens + ?", tokens),
			"total_earned": gorm.Expr(table+".total_earned + ?", tokens),
			"updated_at":   now,
		}),
	}
}

// Debit takes entry.TokensUsed from the user's balance only if the balance covers it,
// records entry, and returns the remaining balance. It returns gorm.ErrRecordNotFound
// when the account is missing or short, leaving the balance untouched.
func (r *tokenRepository) Debit(ctx context.Context, entry *model.UnlockedFeature) (int64, error) {
	db := r.conn()
	if db == nil {
		return 0, ErrDBNotReady
	}
	var remaining int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TokenAccount{}).
			Where("user_id = ? AND tokens >= ?", entry.UserID, entry.TokensUsed).
			Update("tokens", gorm.Expr("tokens - ?", entry.TokensUsed))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		var acct model.TokenAccount
		if err := tx.Where("user_id = ?", entry.UserID).First(&acct).Error; err != nil {
			return err
		}
		remaining = acct.Tokens
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *tokenRepository) ListFeatures(ctx context.Context, uid string) ([]model.UnlockedFeature, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.UnlockedFeature
	if err := db.WithContext(ctx).
		Where("user_id = ?", uid).
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
