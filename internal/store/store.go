// Package store persists which built-in model the user picked. Only the opaque
// model name is stored; callers re-resolve it through the registry on read.
package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ProviderBuiltinAI is the provider key built-in model selections are stored under.
const ProviderBuiltinAI = "builtin-ai"

// ErrNoSelection is returned when nothing has been stored for a provider.
var ErrNoSelection = errors.New("no model selected")

// Selection is one stored choice.
type Selection struct {
	Provider  string    `db:"provider"`
	Model     string    `db:"model"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Store reads and writes model selections.
type Store interface {
	Selection(ctx context.Context, provider string) (Selection, error)
	SetSelection(ctx context.Context, provider, model string) error
	Close() error
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]Selection
	now  func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]Selection), now: time.Now}
}

func (s *MemoryStore) Selection(_ context.Context, provider string) (Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel, ok := s.rows[provider]
	if !ok {
		return Selection{}, ErrNoSelection
	}
	return sel, nil
}

func (s *MemoryStore) SetSelection(_ context.Context, provider, model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[provider] = Selection{Provider: provider, Model: model, UpdatedAt: s.now().UTC()}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
