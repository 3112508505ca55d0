package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/smartaviation/site/internal/core/domain"
)

// stubStore keeps the document in memory and hands out deep copies, so a
// mutation that fails never leaks into the stored state.
type stubStore struct {
	mu     sync.Mutex
	doc    *domain.Document
	writes int
	err    error
}

func newStubStore(doc *domain.Document) *stubStore {
	if doc == nil {
		doc = domain.DefaultDocument()
	}
	return &stubStore{doc: cloneDoc(doc)}
}

func cloneDoc(d *domain.Document) *domain.Document {
	raw, err := json.Marshal(d)
	if err != nil {
		panic(err)
	}
	var out domain.Document
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	out.Normalize()
	return &out
}

func (s *stubStore) Read(_ context.Context) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return cloneDoc(s.doc), nil
}

func (s *stubStore) Write(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = cloneDoc(doc)
	s.writes++
	return nil
}

func (s *stubStore) Update(_ context.Context, fn func(*domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	doc := cloneDoc(s.doc)
	if err := fn(doc); err != nil {
		return err
	}
	s.doc = doc
	s.writes++
	return nil
}

func (s *stubStore) snapshot() *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDoc(s.doc)
}

// stubUploads accepts anything starting with the "IMG" marker.
type stubUploads struct {
	saved []string
}

func (u *stubUploads) Check(data []byte) error {
	if len(data) < 3 || string(data[:3]) != "IMG" {
		return domain.ErrInvalidImage
	}
	return nil
}

func (u *stubUploads) Save(_ context.Context, data []byte, name string) (string, error) {
	if err := u.Check(data); err != nil {
		return "", err
	}
	p := fmt.Sprintf("/uploads/%d-%s", len(u.saved), name)
	u.saved = append(u.saved, p)
	return p, nil
}

// stubSessions is a minimal session registry keyed by token.
type stubSessions struct {
	next     int
	sessions map[string]domain.SessionUser
}

func newStubSessions() *stubSessions {
	return &stubSessions{sessions: make(map[string]domain.SessionUser)}
}

func (s *stubSessions) Create(u domain.SessionUser) (domain.Session, error) {
	s.next++
	tok := fmt.Sprintf("tok-%d", s.next)
	s.sessions[tok] = u
	return domain.Session{Token: tok, User: u}, nil
}

func (s *stubSessions) Validate(token string) (domain.SessionUser, error) {
	u, ok := s.sessions[token]
	if !ok {
		return domain.SessionUser{}, domain.ErrUnauthorized
	}
	return u, nil
}

func (s *stubSessions) Revoke(token string) { delete(s.sessions, token) }

func (s *stubSessions) RevokeUser(userID string) {
	for tok, u := range s.sessions {
		if u.ID == userID {
			delete(s.sessions, tok)
		}
	}
}

func isValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
