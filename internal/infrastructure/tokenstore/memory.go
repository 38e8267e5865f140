// Package tokenstore holds the process-local and file-backed TokenStore
// implementations. The Redis one lives with the other Redis adapters.
package tokenstore

import (
	"context"
	"sync"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// MemoryProvider keeps credentials in process memory, one per scope. They do
// not survive a restart.
type MemoryProvider struct {
	mu    sync.RWMutex
	creds map[string]domain.Credential
}

var _ ports.TokenStoreProvider = (*MemoryProvider)(nil)

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{creds: make(map[string]domain.Credential)}
}

func (p *MemoryProvider) For(scope string) ports.TokenStore {
	return &memoryStore{p: p, scope: scope}
}

type memoryStore struct {
	p     *MemoryProvider
	scope string
}

func (s *memoryStore) Get(context.Context) (domain.Credential, bool, error) {
	s.p.mu.RLock()
	defer s.p.mu.RUnlock()
	c, ok := s.p.creds[s.scope]
	return c, ok, nil
}

func (s *memoryStore) Set(_ context.Context, cred domain.Credential) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	s.p.creds[s.scope] = cred
	return nil
}

func (s *memoryStore) Clear(context.Context) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	delete(s.p.creds, s.scope)
	return nil
}
