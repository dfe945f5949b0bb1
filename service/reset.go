package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// ResetWorker wipes the account store at every UTC midnight. It is a
// single re-arming timer: it never overlaps with itself, and resets
// missed while the process was down are not replayed.
type ResetWorker struct {
	store AccountStore
	now   func() time.Time
}

// NewResetWorker creates a new daily reset worker.
func NewResetWorker(store AccountStore) *ResetWorker {
	return &ResetWorker{
		store: store,
		now:   time.Now,
	}
}

// untilNextBoundary returns the duration until the next UTC midnight.
func (w *ResetWorker) untilNextBoundary() time.Duration {
	now := w.now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return next.Sub(now)
}

// Start begins the worker goroutine and returns a stop function.
func (w *ResetWorker) Start(ctx context.Context) func() {
	stopChan := make(chan struct{})

	go func() {
		log.Info("Daily reset worker started, boundary is midnight UTC")

		for {
			waitDuration := w.untilNextBoundary()
			log.Infof("Daily reset worker waiting %v until next reset", waitDuration)

			select {
			case <-ctx.Done():
				log.Info("Daily reset worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Daily reset worker shutting down (stop requested)...")
				return
			case <-time.After(waitDuration):
				w.fire(ctx)
			}
		}
	}()

	return func() {
		close(stopChan)
	}
}

// fire wipes all balances and cooldowns. The credential store is not
// touched; it lives outside the ledger.
func (w *ResetWorker) fire(ctx context.Context) {
	log.Info("Daily reset firing, clearing all accounts")
	if err := w.store.Reset(ctx); err != nil {
		log.Errorf("Daily reset failed: %v", err)
		return
	}
	log.Info("Daily reset completed")
}
