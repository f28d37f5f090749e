package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/shinyyama/crib-match-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "svc.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func seedRenter(t *testing.T, repo repository.PreferenceRepository, uid string, locations, tags []string, moveIn string) *model.RenterPreference {
	t.Helper()
	p := &model.RenterPreference{
		UserID:      uid,
		Bedrooms:    2,
		Bathrooms:   1,
		Budget:      2000,
		Locations:   datatypes.JSONSlice[string](locations),
		Preferences: datatypes.JSONSlice[string](tags),
		MoveInDate:  moveIn,
	}
	require.NoError(t, repo.SaveRenter(context.Background(), p))
	return p
}

func seedLandlord(t *testing.T, repo repository.PreferenceRepository, uid, location string, features, tenant []string, moveIn string) *model.LandlordPreference {
	t.Helper()
	p := &model.LandlordPreference{
		UserID:              uid,
		PropertyName:        uid + " flat",
		Location:            location,
		BuildingFeatures:    datatypes.JSONSlice[string](features),
		TenantPreferences:   datatypes.JSONSlice[string](tenant),
		PreferredMoveInDate: moveIn,
	}
	require.NoError(t, repo.SaveLandlord(context.Background(), p))
	return p
}
