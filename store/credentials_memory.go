package store

import (
	"context"
	"sync"

	"coinbot/models"
)

// MemoryCredentialStore holds captured OAuth2 tokens in process memory.
// The daily ledger reset never touches it.
type MemoryCredentialStore struct {
	mu    sync.RWMutex
	creds map[string]*models.Credential
}

// NewMemoryCredentialStore creates an empty in-memory credential store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		creds: make(map[string]*models.Credential),
	}
}

func (s *MemoryCredentialStore) Put(ctx context.Context, cred *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *cred
	s.creds[cred.UserID] = &copied
	return nil
}

func (s *MemoryCredentialStore) All(ctx context.Context) ([]*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Credential, 0, len(s.creds))
	for _, cred := range s.creds {
		copied := *cred
		out = append(out, &copied)
	}
	return out, nil
}

func (s *MemoryCredentialStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.creds), nil
}
