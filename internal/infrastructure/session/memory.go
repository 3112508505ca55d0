// Package session keeps admin sessions in process memory.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/smartaviation/site/internal/core/domain"
)

// DefaultTTL matches the eight-hour admin workday.
const DefaultTTL = 8 * time.Hour

const tokenBytes = 32

// MemoryStore maps opaque tokens to sessions. Entries are checked for expiry
// on every Validate; nothing survives a restart.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]domain.Session
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]domain.Session),
	}
}

// WithClock replaces the time source. Used by tests.
func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.now = now
	return m
}

func (m *MemoryStore) Create(user domain.SessionUser) (domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return domain.Session{}, err
	}

	sess := domain.Session{Token: token, User: user, ExpiresAt: m.now().Add(m.ttl)}

	m.mu.Lock()
	m.sessions[token] = sess
	m.mu.Unlock()
	return sess, nil
}

func (m *MemoryStore) Validate(token string) (domain.SessionUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return domain.SessionUser{}, domain.ErrUnauthorized
	}
	if sess.Expired(m.now()) {
		delete(m.sessions, token)
		return domain.SessionUser{}, domain.ErrSessionExpired
	}
	return sess.User, nil
}

func (m *MemoryStore) Revoke(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

func (m *MemoryStore) RevokeUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, sess := range m.sessions {
		if sess.User.ID == userID {
			delete(m.sessions, token)
		}
	}
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Sweep drops expired sessions and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for token, sess := range m.sessions {
		if sess.Expired(now) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}
