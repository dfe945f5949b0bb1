package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coinbot/models"
)

func TestResetWorker_UntilNextBoundary(t *testing.T) {
	worker := NewResetWorker(newFakeAccountStore())

	worker.now = func() time.Time {
		return time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
	}
	assert.Equal(t, 30*time.Minute, worker.untilNextBoundary())

	worker.now = func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	assert.Equal(t, 24*time.Hour, worker.untilNextBoundary())

	// Local timezones must not shift the boundary
	worker.now = func() time.Time {
		return time.Date(2024, 6, 1, 23, 30, 0, 0, time.FixedZone("JST", 9*3600))
	}
	assert.Equal(t, 9*time.Hour+30*time.Minute, worker.untilNextBoundary())
}

func TestResetWorker_FireWipesAccounts(t *testing.T) {
	store := newFakeAccountStore()
	store.accounts["user1"] = &models.Account{Balance: 500, Cooldowns: map[string]int64{"work": 1}}
	worker := NewResetWorker(store)

	worker.fire(context.Background())

	assert.Empty(t, store.accounts)
}

func TestResetWorker_StopTerminatesGoroutine(t *testing.T) {
	worker := NewResetWorker(newFakeAccountStore())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := worker.Start(ctx)
	stop()
	// Stopping twice must not panic through the closed channel.
	assert.NotPanics(t, func() { cancel() })
}
