package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinbot/models"
	"coinbot/store"
	"coinbot/store/testutil"
)

func TestPostgresAccountStore_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	s := store.NewPostgresAccountStore(testDB.DB)
	ctx := context.Background()

	// Unknown IDs read as fresh accounts
	account, err := s.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.Balance)
	assert.Empty(t, account.Cooldowns)

	// Insert
	account = models.NewAccount()
	account.Balance = 1234
	account.Cooldowns["work"] = time.Now().UnixMilli()
	require.NoError(t, s.Set(ctx, "user1", account))

	got, err := s.Get(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), got.Balance)
	assert.Equal(t, account.Cooldowns["work"], got.Cooldowns["work"])

	// Upsert overwrites
	account.Balance = 42
	account.Cooldowns["rob"] = time.Now().UnixMilli()
	require.NoError(t, s.Set(ctx, "user1", account))

	got, err = s.Get(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.Balance)
	assert.Len(t, got.Cooldowns, 2)
}

func TestPostgresAccountStore_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	s := store.NewPostgresAccountStore(testDB.DB)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		account := models.NewAccount()
		account.Balance = 100
		require.NoError(t, s.Set(ctx, id, account))
	}

	require.NoError(t, s.Reset(ctx))

	for _, id := range []string{"a", "b", "c"} {
		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got.Balance)
	}
}

func TestPostgresCredentialStore_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	testDB := testutil.SetupTestDatabase(t)
	s := store.NewPostgresCredentialStore(testDB.DB)
	ctx := context.Background()

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	first := &models.Credential{
		UserID:      "user1",
		AccessToken: "token-one",
		TokenType:   "Bearer",
		CapturedAt:  time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, s.Put(ctx, first))

	second := &models.Credential{
		UserID:      "user2",
		AccessToken: "token-two",
		TokenType:   "Bearer",
		CapturedAt:  first.CapturedAt.Add(time.Minute),
	}
	require.NoError(t, s.Put(ctx, second))

	// Re-verifying replaces the stored token instead of duplicating it
	replacement := &models.Credential{
		UserID:      "user1",
		AccessToken: "token-one-refreshed",
		TokenType:   "Bearer",
		CapturedAt:  first.CapturedAt.Add(2 * time.Minute),
	}
	require.NoError(t, s.Put(ctx, replacement))

	count, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// Ordered by capture time
	assert.Equal(t, "user2", all[0].UserID)
	assert.Equal(t, "user1", all[1].UserID)
	assert.Equal(t, "token-one-refreshed", all[1].AccessToken)
}
