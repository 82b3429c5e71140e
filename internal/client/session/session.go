// Package session holds the application's authentication state.
//
// A Session is created once at start-up and handed to whatever needs to know
// whether the user is logged in. It never inspects the token: the backend is
// the only judge of whether a token is valid.
package session

import "sync"

type Session struct {
	mu    sync.RWMutex
	token string
}

func New() *Session {
	return &Session{}
}

// IsAuthenticated reports whether Login was called without a matching Logout.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the opaque access token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Login marks the session authenticated with token. An empty token leaves
// the session logged out.
func (s *Session) Login(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
