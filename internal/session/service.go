// Package session owns the authenticated session token. It is the only
// code allowed to write the token; search, booking and wallet calls all
// receive an injected *Service instead of reading storage themselves.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRoute is where unauthenticated users are redirected.
const LoginRoute = "/login"

// Decision is the outcome of the admission check for a guarded view.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Service is the process-wide session holder. A non-empty token counts
// as "logged in"; the server stays authoritative on validity and expiry.
type Service struct {
	mu    sync.Mutex
	store Store
	token string
}

// NewService loads any persisted token from the store. A store load
// failure is treated as no session rather than a fatal error.
func NewService(store Store) *Service {
	s := &Service{store: store}
	if tok, err := store.Load(); err == nil {
		s.token = tok
	}
	return s
}

// Token returns the current bearer token, empty when logged out.
func (s *Service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Present reports whether a session token exists.
func (s *Service) Present() bool {
	return s.Token() != ""
}

// Set replaces the session on successful login.
func (s *Service) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return s.store.Save(token)
}

// Clear tears the session down. Called on logout and on any 401-class
// response from an authenticated operation.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return s.store.Clear()
}

// Admit is the pure admission predicate for guarded views: allow when a
// token is present, otherwise redirect to login. No network call.
func (s *Service) Admit() Decision {
	if s.Present() {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: LoginRoute}
}

// ExpiresAt peeks at the token's exp claim without verifying the
// signature. Best effort only: a client-side hint for display, never an
// admission input.
func (s *Service) ExpiresAt() (time.Time, bool) {
	tok := s.Token()
	if tok == "" {
		return time.Time{}, false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
