package auth

import "sync"

// State is a point-in-time snapshot of the session. Deliveries are discrete
// and idempotent: handling the same snapshot twice must be harmless.
type State struct {
	UserID   string
	Email    string
	Name     string
	SignedIn bool
}

type subscribers struct {
	mu     sync.Mutex
	nextID int
	fns    map[int]func(State)
}

func newSubscribers() *subscribers {
	return &subscribers{fns: make(map[int]func(State))}
}

func (s *subscribers) add(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.fns[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.fns, id)
		s.mu.Unlock()
	}
}

func (s *subscribers) notify(state State) {
	s.mu.Lock()
	fns := make([]func(State), 0, len(s.fns))
	for _, fn := range s.fns {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	// Callbacks run outside the lock so a subscriber may unsubscribe itself.
	for _, fn := range fns {
		fn(state)
	}
}

// Subscribe registers a callback for session changes and returns its
// unsubscribe function. Releasing the subscription is the caller's job; a
// dropped handle keeps the callback alive.
func (s *Service) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.subs.add(fn)
}
