package service

import (
	"context"
	"testing"

	"github.com/shinyyama/crib-match-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(t *testing.T) (ChatService, repository.PreferenceRepository) {
	t.Helper()
	db := newTestDB(t)
	prefRepo := repository.NewPreferenceRepository(db)
	return NewChatService(repository.NewChatRepository(db), prefRepo), prefRepo
}

func TestChatService_Open(t *testing.T) {
	ctx := context.Background()
	svc, prefRepo := newChatFixture(t)
	seedRenter(t, prefRepo, "renter", nil, nil, "ASAP")
	seedLandlord(t, prefRepo, "landlord", "Downtown", nil, nil, "ASAP")

	fromRenter, err := svc.Open(ctx, OpenChatInput{CallerUID: "renter", CounterpartUID: "landlord"})
	require.NoError(t, err)
	assert.Equal(t, "renter", fromRenter.RenterUID)
	assert.Equal(t, "landlord", fromRenter.LandlordUID)

	fromLandlord, err := svc.Open(ctx, OpenChatInput{CallerUID: "landlord", CounterpartUID: "renter"})
	require.NoError(t, err)
	assert.Equal(t, fromRenter.ID, fromLandlord.ID)
}

func TestChatService_OpenRequiresPreferences(t *testing.T) {
	ctx := context.Background()
	svc, prefRepo := newChatFixture(t)
	seedRenter(t, prefRepo, "renter", nil, nil, "ASAP")
	seedRenter(t, prefRepo, "other-renter", nil, nil, "ASAP")

	_, err := svc.Open(ctx, OpenChatInput{CallerUID: "renter", CounterpartUID: "stranger"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Open(ctx, OpenChatInput{CallerUID: "renter", CounterpartUID: "other-renter"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Open(ctx, OpenChatInput{CallerUID: "renter", CounterpartUID: "renter"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChatService_Messages(t *testing.T) {
	ctx := context.Background()
	svc, prefRepo := newChatFixture(t)
	seedRenter(t, prefRepo, "renter", nil, nil, "ASAP")
	seedLandlord(t, prefRepo, "landlord", "Downtown", nil, nil, "ASAP")
	chat, err := svc.Open(ctx, OpenChatInput{CallerUID: "renter", CounterpartUID: "landlord"})
	require.NoError(t, err)

	_, err = svc.PostMessage(ctx, chat.ID, "renter", "  is it still available?  ")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, chat.ID, "landlord", "yes")
	require.NoError(t, err)

	_, err = svc.PostMessage(ctx, chat.ID, "renter", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.PostMessage(ctx, chat.ID, "intruder", "hi")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.PostMessage(ctx, "nope", "renter", "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	msgs, err := svc.ListMessages(ctx, chat.ID, "landlord")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "is it still available?", msgs[0].Body)
	assert.Equal(t, "landlord", msgs[1].SenderUID)

	_, err = svc.ListMessages(ctx, chat.ID, "intruder")
	assert.ErrorIs(t, err, ErrForbidden)

	chats, err := svc.ListByUser(ctx, "landlord")
	require.NoError(t, err)
	assert.Len(t, chats, 1)

	none, err := svc.ListByUser(ctx, "intruder")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
