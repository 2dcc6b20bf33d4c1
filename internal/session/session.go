package session

import (
	"strings"
	"sync"
	"time"

	"github.com/envatex/storefront-gateway/internal/cart"
	pkgerrors "github.com/envatex/storefront-gateway/pkg/errors"
)

// Session is the explicit per-visitor context: the owned cart, the opaque
// upstream access token, and the in-flight submission guard. It replaces
// ambient browser-global state with a single mutation entry point for the
// token (SetToken/ClearToken).
type Session struct {
	id string

	mu         sync.Mutex
	token      string
	submitting bool
	lastSeen   time.Time

	cart *cart.Store
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Cart returns the session-owned cart store.
func (s *Session) Cart() *cart.Store {
	return s.cart
}

// Token returns the opaque upstream access token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether an upstream token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores the opaque upstream credential. This is the only way a
// token enters the session.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

// ClearToken discards the upstream credential, returning the session to the
// unauthenticated state. Called on logout and on any authorization failure
// from the storefront api.
func (s *Session) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// BeginSubmission marks a quotation submission as in flight. At most one
// submission runs per session at a time; a concurrent attempt is rejected
// so the caller can surface it instead of double-submitting.
func (s *Session) BeginSubmission() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return pkgerrors.New(pkgerrors.CodeConflict, "a submission is already in progress")
	}
	s.submitting = true
	return nil
}

// EndSubmission releases the in-flight guard regardless of outcome.
func (s *Session) EndSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) seenBefore(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}
