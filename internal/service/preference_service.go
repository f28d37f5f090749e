package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/shinyyama/crib-match-backend/internal/repository"
	"gorm.io/gorm"
)

const (
	UserTypeRenter   = "renter"
	UserTypeLandlord = "landlord"
	UserTypeBoth     = "both"
)

type UserPreferences struct {
	UserType string                    `json:"user_type"`
	Renter   *model.RenterPreference   `json:"renter,omitempty"`
	Landlord *model.LandlordPreference `json:"landlord,omitempty"`
}

type PreferenceService interface {
	SaveRenter(ctx context.Context, p *model.RenterPreference) error
	SaveLandlord(ctx context.Context, p *model.LandlordPreference) error
	GetMine(ctx context.Context, uid string) (*UserPreferences, error)
}

type preferenceService struct {
	repo repository.PreferenceRepository
}

func NewPreferenceService(repo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{repo: repo}
}

func (s *preferenceService) SaveRenter(ctx context.Context, p *model.RenterPreference) error {
	if p == nil || p.UserID == "" {
		return ErrInvalidInput
	}
	p.MoveInDate = strings.TrimSpace(p.MoveInDate)
	p.Locations = cleanTags(p.Locations)
	p.Preferences = cleanTags(p.Preferences)
	if p.Bedrooms < 0 || p.Bathrooms < 0 || p.Budget < 0 || p.MoveInDate == "" {
		return ErrInvalidInput
	}
	return s.repo.SaveRenter(ctx, p)
}

func (s *preferenceService) SaveLandlord(ctx context.Context, p *model.LandlordPreference) error {
	if p == nil || p.UserID == "" {
		return ErrInvalidInput
	}
	p.PropertyName = strings.TrimSpace(p.PropertyName)
	p.Location = strings.TrimSpace(p.Location)
	p.PreferredMoveInDate = strings.TrimSpace(p.PreferredMoveInDate)
	p.BuildingFeatures = cleanTags(p.BuildingFeatures)
	p.TenantPreferences = cleanTags(p.TenantPreferences)
	if p.PropertyName == "" || p.Location == "" || p.PreferredMoveInDate == "" || p.MinIncome < 0 {
		return ErrInvalidInput
	}
	return s.repo.SaveLandlord(ctx, p)
}

// GetMine returns ErrNotFound when the user has not onboarded yet.
func (s *preferenceService) GetMine(ctx context.Context, uid string) (*UserPreferences, error) {
	if uid == "" {
		return nil, ErrInvalidInput
	}
	out := &UserPreferences{}
	rp, err := s.repo.FindRenterByUser(ctx, uid)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	out.Renter = rp
	lp, err := s.repo.FindLandlordByUser(ctx, uid)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	out.Landlord = lp

	switch {
	case out.Renter != nil && out.Landlord != nil:
		out.UserType = UserTypeBoth
	case out.Renter != nil:
		out.UserType = UserTypeRenter
	case out.Landlord != nil:
		out.UserType = UserTypeLandlord
	default:
		return nil, ErrNotFound
	}
	return out, nil
}

// cleanTags trims entries and drops blanks. Order is kept.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
