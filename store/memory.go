package store

import (
	"context"
	"sync"

	"coinbot/models"
)

// MemoryAccountStore is the in-process ledger backend. State is lost on
// restart and wiped nightly by the reset worker.
type MemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

// NewMemoryAccountStore creates an empty in-memory account store.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{
		accounts: make(map[string]*models.Account),
	}
}

// Get returns a deep copy of the stored account, or a fresh zero
// account for unknown IDs. Callers never hold references into the map.
func (s *MemoryAccountStore) Get(ctx context.Context, accountID string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return models.NewAccount(), nil
	}
	return account.Clone(), nil
}

// Set overwrites the stored account with a deep copy of the given one.
func (s *MemoryAccountStore) Set(ctx context.Context, accountID string, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[accountID] = account.Clone()
	return nil
}

// Reset wipes every account.
func (s *MemoryAccountStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]*models.Account)
	return nil
}
