package service

import (
	"sort"
	"sync"
)

// accountLocks serializes read-modify-write cycles per account so that
// concurrent operations on the same account never lose updates.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *accountLocks) lockFor(accountID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[accountID] = lock
	}
	return lock
}

// Lock acquires the mutex for a single account.
func (l *accountLocks) Lock(accountID string) func() {
	lock := l.lockFor(accountID)
	lock.Lock()
	return lock.Unlock
}

// LockPair acquires both accounts' mutexes in sorted ID order so that
// two-party operations (rob, give) cannot deadlock against each other.
func (l *accountLocks) LockPair(a, b string) func() {
	if a == b {
		return l.Lock(a)
	}

	ids := []string{a, b}
	sort.Strings(ids)

	first := l.lockFor(ids[0])
	second := l.lockFor(ids[1])
	first.Lock()
	second.Lock()

	return func() {
		second.Unlock()
		first.Unlock()
	}
}

// LockAll acquires the mutexes for a set of accounts in sorted ID
// order. Used by admin adjustments that touch many accounts at once.
func (l *accountLocks) LockAll(accountIDs []string) func() {
	ids := make([]string, len(accountIDs))
	copy(ids, accountIDs)
	sort.Strings(ids)

	acquired := make([]*sync.Mutex, 0, len(ids))
	for i, id := range ids {
		if i > 0 && id == ids[i-1] {
			continue
		}
		lock := l.lockFor(id)
		lock.Lock()
		acquired = append(acquired, lock)
	}

	return func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			acquired[i].Unlock()
		}
	}
}
