// Package memory provides a simple in-memory ledger source used for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/tinoosan/trialbalance/internal/ledger"
)

// Store is an in-memory chart of accounts plus journal.
// It is guarded by an RWMutex for concurrent reads/writes.
type Store struct {
	mu       sync.RWMutex
	accounts []ledger.Account
	// entries are kept in posting order; reports depend on it.
	entries []ledger.JournalEntry
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Seed helpers for local dev/tests.
func (s *Store) SeedAccount(a ledger.Account) {
	s.mu.Lock()
	s.accounts = append(s.accounts, a)
	s.mu.Unlock()
}

func (s *Store) SeedEntry(e ledger.JournalEntry) {
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
}

func (s *Store) Reset() {
	s.mu.Lock()
	s.accounts = nil
	s.entries = nil
	s.mu.Unlock()
}

// ListAccounts returns a copy of the chart in seed order.
func (s *Store) ListAccounts(_ context.Context) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

// ListEntries returns a copy of the journal in posting order.
func (s *Store) ListEntries(_ context.Context) ([]ledger.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.JournalEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
