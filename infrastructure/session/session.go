package session

import "sync"

// Store holds the bearer token used against the product registry. It is
// injected into every outbound client so call sites declare the dependency
// instead of reading ambient global state.
type Store struct {
	mu    sync.RWMutex
	token string
}

// NewStore creates a session store seeded with an initial token. An empty
// token means the session starts unauthenticated.
func NewStore(token string) *Store {
	return &Store{token: token}
}

// Set replaces the session token, e.g. after a login exchange.
func (s *Store) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the current bearer token.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear drops the token. Called when the registry rejects it or on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}
