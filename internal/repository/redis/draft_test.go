package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jwalitptl/therapy-portal/internal/model"
	"github.com/jwalitptl/therapy-portal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server when TEST_REDIS_URL is set.
func TestDraftStore_RoundTrip(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{URL: url})
	require.NoError(t, err)
	defer client.Close()

	store := NewDraftStore(client, time.Minute)
	draft := &model.BookingDraft{
		ID:      uuid.NewString(),
		Step:    model.BookingStepSlot,
		Patient: model.PatientDetails{FirstName: "Ana", GuardianPhone: "55512345"},
	}

	require.NoError(t, store.Save(ctx, draft))

	got, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStepSlot, got.Step)
	assert.Equal(t, "55512345", got.Patient.GuardianPhone)

	ok, err := store.Lock(ctx, draft.ID, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.Lock(ctx, draft.ID, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, store.Unlock(ctx, draft.ID))

	require.NoError(t, store.Delete(ctx, draft.ID))
	_, err = store.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, repository.ErrDraftNotFound)
}
