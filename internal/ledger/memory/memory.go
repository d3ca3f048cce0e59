package memory

import (
	"context"
	"sync"

	"flowcash/internal/core"
	"flowcash/internal/ledger"
)

// Store is an in-memory backend for tests and zero-config runs. All maps are
// keyed by user ID; the transaction slice per user preserves insertion order.
type Store struct {
	mu       sync.Mutex
	txs      map[string][]core.Transaction
	profiles map[string]core.Profile
	users    map[string]ledger.Account // keyed by user ID
	byEmail  map[string]string         // email -> user ID
}

var (
	_ ledger.TransactionStore = (*Store)(nil)
	_ ledger.ProfileStore     = (*Store)(nil)
	_ ledger.UserStore        = (*Store)(nil)
)

func New() *Store {
	return &Store{
		txs:      make(map[string][]core.Transaction),
		profiles: make(map[string]core.Profile),
		users:    make(map[string]ledger.Account),
		byEmail:  make(map[string]string),
	}
}

// ListTransactions returns a copy of the user's transactions in insertion
// order. Unknown users get an empty slice, never an error.
func (s *Store) ListTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs[userID]))
	copy(out, s.txs[userID])
	return out, nil
}

func (s *Store) SaveTransaction(_ context.Context, userID string, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[userID] = append(s.txs[userID], tx)
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, userID, txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.txs[userID]
	for i, t := range items {
		if t.ID == txID {
			s.txs[userID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	// Deleting an absent entry is not an error; the optimistic local copy
	// may already be ahead of the store.
	return nil
}

func (s *Store) LoadProfile(_ context.Context, userID string) (*core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (s *Store) SaveProfile(_ context.Context, userID string, p core.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[userID] = p.Merge(s.profiles[userID])
	return nil
}

func (s *Store) CreateUser(_ context.Context, u ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[u.Email]; exists {
		return ledger.ErrEmailTaken
	}
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (*ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) UserByID(_ context.Context, id string) (*ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
