package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPreferenceRepository_SaveRenterUpserts(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepository(newTestDB(t))

	p := &model.RenterPreference{UserID: "u1", Bedrooms: 2, Bathrooms: 1.5, Locations: []string{"Downtown"}, MoveInDate: "ASAP"}
	require.NoError(t, repo.SaveRenter(ctx, p))
	require.NotEmpty(t, p.ID)
	firstID := p.ID

	again := &model.RenterPreference{UserID: "u1", Bedrooms: 3, Preferences: []string{"Gym"}, MoveInDate: "Flexible"}
	require.NoError(t, repo.SaveRenter(ctx, again))
	assert.Equal(t, firstID, again.ID)

	list, err := repo.ListRenters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].Bedrooms)
	assert.Equal(t, []string{"Gym"}, []string(list[0].Preferences))
	assert.Empty(t, list[0].Locations)
}

func TestPreferenceRepository_Landlords(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepository(newTestDB(t))

	require.NoError(t, repo.SaveLandlord(ctx, &model.LandlordPreference{
		UserID:              "owner",
		PropertyName:        "Maple Lofts",
		Location:            "Downtown",
		BuildingFeatures:    []string{"Gym", "Pet-friendly"},
		PreferredMoveInDate: "Flexible",
	}))

	got, err := repo.FindLandlordByUser(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, "Maple Lofts", got.PropertyName)
	assert.Equal(t, []string{"Gym", "Pet-friendly"}, []string(got.BuildingFeatures))

	_, err = repo.FindLandlordByUser(ctx, "someone-else")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
