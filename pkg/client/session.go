package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/smartaviation/site/internal/core/domain"
)

// Session is the locally remembered login.
type Session struct {
	Token string              `json:"token"`
	User  *domain.SessionUser `json:"user,omitempty"`
}

// SessionStorage keeps the current session between calls.
type SessionStorage interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// MemoryStorage lives as long as the process, like a browser tab's sessionStorage.
type MemoryStorage struct {
	mu   sync.Mutex
	sess Session
}

func NewMemoryStorage() *MemoryStorage { return &MemoryStorage{} }

func (m *MemoryStorage) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess, nil
}

func (m *MemoryStorage) Save(s Session) error {
	m.mu.Lock()
	m.sess = s
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Clear() error {
	return m.Save(Session{})
}

// FileStorage keeps the session in a private JSON file so separate command
// invocations share one login.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage { return &FileStorage{path: path} }

func (f *FileStorage) Load() (Session, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		// A corrupt file is treated as logged out.
		return Session{}, nil
	}
	return s, nil
}

func (f *FileStorage) Save(s Session) error {
	if s.Token == "" {
		return f.Clear()
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o600)
}

func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
