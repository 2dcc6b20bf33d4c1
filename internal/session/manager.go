package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/envatex/storefront-gateway/internal/cart"
	pkgauth "github.com/envatex/storefront-gateway/pkg/auth"
	"github.com/envatex/storefront-gateway/pkg/config"
	"github.com/envatex/storefront-gateway/pkg/logger"
	"github.com/google/uuid"
)

// Manager owns the in-memory session registry. Sessions and their carts are
// deliberately not persisted: an evicted or restarted gateway starts every
// visitor with an empty cart.
type Manager struct {
	cfg  config.SessionConfig
	logg *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	now func() time.Time
}

// NewManager validates the configuration and builds an empty registry.
func NewManager(cfg config.SessionConfig, logg *logger.Logger) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		cfg:      cfg,
		logg:     logg,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}, nil
}

// Create registers a fresh session and returns it with its signed cookie
// value.
func (m *Manager) Create() (*Session, string, error) {
	sess := &Session{
		id:   uuid.NewString(),
		cart: cart.NewStore(),
	}
	sess.touch(m.now())

	signed, err := pkgauth.MintSessionToken(m.cfg, m.now(), sess.id)
	if err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	m.sessions[sess.id] = sess
	m.mu.Unlock()

	return sess, signed, nil
}

// Resolve returns the session bound to the signed cookie value. A missing,
// invalid, or expired cookie — or a session the janitor already evicted —
// yields a fresh session and a replacement cookie.
func (m *Manager) Resolve(cookieValue string) (*Session, string, error) {
	if cookieValue != "" {
		if claims, err := pkgauth.ParseSessionToken(m.cfg, cookieValue); err == nil {
			m.mu.RLock()
			sess, ok := m.sessions[claims.SessionID]
			m.mu.RUnlock()
			if ok {
				sess.touch(m.now())
				return sess, "", nil
			}
		}
	}
	return m.Create()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle past the TTL and reports how many were removed.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.cfg.TTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, sess := range m.sessions {
		if sess.seenBefore(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// StartJanitor runs Sweep on the configured interval until ctx is done.
func (m *Manager) StartJanitor(ctx context.Context) {
	interval := m.cfg.SweepEvery
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if evicted := m.Sweep(); evicted > 0 && m.logg != nil {
					logCtx := m.logg.WithFields(ctx, map[string]any{
						"evicted": evicted,
						"live":    m.Len(),
					})
					m.logg.Info(logCtx, "session.sweep")
				}
			}
		}
	}()
}

// CookieName exposes the configured cookie name for the HTTP layer.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}
