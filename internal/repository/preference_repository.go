package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shinyyama/crib-match-backend/internal/model"
	"gorm.io/gorm"
)

type PreferenceRepository interface {
	ListRenters(ctx context.Context) ([]model.RenterPreference, error)
	ListLandlords(ctx context.Context) ([]model.LandlordPreference, error)
	FindRenterByUser(ctx context.Context, uid string) (*model.RenterPreference, error)
	FindLandlordByUser(ctx context.Context, uid string) (*model.LandlordPreference, error)
	SaveRenter(ctx context.Context, p *model.RenterPreference) error
	SaveLandlord(ctx context.Context, p *model.LandlordPreference) error
	SetDB(db *gorm.DB)
}

type preferenceRepository struct {
	dbHolder
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	r := &preferenceRepository{}
	r.SetDB(db)
	return r
}

func (r *preferenceRepository) ListRenters(ctx context.Context) ([]model.RenterPreference, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.RenterPreference
	if err := db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *preferenceRepository) ListLandlords(ctx context.Context) ([]model.LandlordPreference, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.LandlordPreference
	if err := db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *preferenceRepository) FindRenterByUser(ctx context.Context, uid string) (*model.RenterPreference, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var p model.RenterPreference
	if err := db.WithContext(ctx).Where("user_id = ?", uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *preferenceRepository) FindLandlordByUser(ctx context.Context, uid string) (*model.LandlordPreference, error) {
	db := r.conn()
	if db == nil {
		return nil, ErrDBNotReady
	}
	var p model.LandlordPreference
	if err := db.WithContext(ctx).Where("user_id = ?", uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveRenter inserts p, or overwrites the record the same user already has.
func (r *preferenceRepository) SaveRenter(ctx context.Context, p *model.RenterPreference) error {
	db := r.conn()
	if db == nil {
		return ErrDBNotReady
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.RenterPreference
		err := tx.Where("user_id = ?", p.UserID).First(&existing).Error
		switch {
		case err == nil:
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			return tx.Save(p).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if p.ID == "" {
				p.ID = uuid.NewString()
			}
			return tx.Create(p).Error
		default:
			return err
		}
	})
}

func (r *preferenceRepository) SaveLandlord(ctx context.Context, p *model.LandlordPreference) error {
	db := r.conn()
	if db == nil {
		return ErrDBNotReady
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.LandlordPreference
		err := tx.Where("user_id = ?", p.UserID).First(&existing).Error
		switch {
		case err == nil:
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			return tx.Save(p).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if p.ID == "" {
				p.ID = uuid.NewString()
			}
			return tx.Create(p).Error
		default:
			return err
		}
	})
}
