package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	type payload struct {
		Challenge string `json:"challenge"`
	}

	require.NoError(t, store.Save(ctx, "reg:1", payload{Challenge: "abc"}, time.Minute))

	var got payload
	require.NoError(t, store.Load(ctx, "reg:1", &got))
	assert.Equal(t, "abc", got.Challenge)

	require.NoError(t, store.Delete(ctx, "reg:1"))
	assert.ErrorIs(t, store.Load(ctx, "reg:1", &got), ErrNotFound)
}

func TestMemoryStoreExpiryCheckedOnRead(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "reg:2", "challenge", -time.Second))

	var got string
	assert.ErrorIs(t, store.Load(ctx, "reg:2", &got), ErrNotFound)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemoryStore()

	var got string
	assert.ErrorIs(t, store.Load(context.Background(), "absent", &got), ErrNotFound)
}
