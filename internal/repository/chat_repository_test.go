package repository

import (
	"context"
	"testing"

	"github.com/shinyyama/crib-match-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRepository_FindOrCreateIsStable(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(newTestDB(t))

	first, err := repo.FindOrCreate(ctx, &model.Chat{RenterUID: "renter", LandlordUID: "landlord"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := repo.FindOrCreate(ctx, &model.Chat{RenterUID: "renter", LandlordUID: "landlord"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := repo.FindByUser(ctx, "landlord")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestChatRepository_Messages(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(newTestDB(t))
	cv, err := repo.FindOrCreate(ctx, &model.Chat{RenterUID: "renter", LandlordUID: "landlord"})
	require.NoError(t, err)

	require.NoError(t, repo.CreateMessage(ctx, &model.ChatMessage{ChatID: cv.ID, SenderUID: "renter", Body: "Is it still available?"}))
	n, err := repo.CountMessagesNotFrom(ctx, cv.ID, "renter")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.CreateMessage(ctx, &model.ChatMessage{ChatID: cv.ID, SenderUID: "landlord", Body: "Yes."}))
	n, err = repo.CountMessagesNotFrom(ctx, cv.ID, "renter")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	msgs, err := repo.ListMessages(ctx, cv.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestChatRepository_FindOrCreateKeepsFirstChat(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(newTestDB(t))
	prop := "property-1"
	other := "property-2"

	first, err := repo.FindOrCreate(ctx, &model.Chat{RenterUID: "renter", LandlordUID: "landlord", PropertyID: &prop})
	require.NoError(t, err)

	again, err := repo.FindOrCreate(ctx, &model.Chat{ID: "caller-supplied", RenterUID: "renter", LandlordUID: "landlord", PropertyID: &other})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	require.NotNil(t, again.PropertyID)
	assert.Equal(t, prop, *again.PropertyID)

	third, err := repo.FindOrCreate(ctx, &model.Chat{RenterUID: "renter", LandlordUID: "someone-else"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)

	list, err := repo.FindByUser(ctx, "renter")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
