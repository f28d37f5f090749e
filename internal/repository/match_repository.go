package repository

import (
	"context"
	"fmt"

	"github.com/shinyyama/crib-match-backend/internal/model"
	"gorm.io/gorm"
)

type MatchRepository interface {
	ReplaceAll(ctx context.Context, matches []model.Match, batchSize int) error
	List(ctx context.Context) ([]model.Match, error)
	ListByRenter(ctx context.Context, renterID string) ([]model.Match, error)
	ListByLandlord(ctx context.Context, landlordID string) ([]model.Match, error)
	Count(ctx context.Context) (int64, error)
	SetDB(db *gorm.DB)
}

type matchRepository struct {
	dbHolder
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	r := &matchRepository{}
	r.SetDB(db)
	return r
}

// ReplaceAll swaps the whole match table for matches in one transaction.
// Readers see either the old set or the new one, never a mix.
func (r *matchRepository) ReplaceAll(ctx context.Context, matches []model.Match, batchSize int) error {
	db := r.conn()
	if db == nil {
		return ErrDBNotReady
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Match{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrMatchDelete, err)
		}
		if len(matches) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(matches, batchSize).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrMatchInsert, err)
		}
		return nil
	})
}

func (r *matchRepository) List(ctx context.Context) ([]model.Match, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Match
	if err := db.WithContext(ctx).
		Order("compatibility_score DESC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *matchRepository) ListByRenter(ctx context.Context, renterID string) ([]model.Match, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Match
	if err := db.WithContext(ctx).
		Where("renter_id = ?", renterID).
		Order("compatibility_score DESC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *matchRepository) ListByLandlord(ctx context.Context, landlordID string) ([]model.Match, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Match
	if err := db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Order("compatibility_score DESC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *matchRepository) Count(ctx context.Context) (int64, error) {
	db := r.conn()
	if db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	if err := db.WithContext(ctx).Model(&model.Match{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
