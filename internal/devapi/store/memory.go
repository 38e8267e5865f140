// Package store provides the in-memory repositories of the development
// backend: accounts when no MongoDB is configured, banks and alerts always.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// MemoryAccounts is a process-local AccountRepository.
type MemoryAccounts struct {
	mu     sync.RWMutex
	byID   map[int64]*domain.Account
	nextID int64
	now    func() time.Time
}

var _ ports.AccountRepository = (*MemoryAccounts)(nil)

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{byID: make(map[int64]*domain.Account), now: time.Now}
}

func clone(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func (m *MemoryAccounts) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.byID {
		if strings.EqualFold(a.Email, account.Email) {
			return nil, domain.ErrUserExists
		}
	}
	m.nextID++
	c := clone(account)
	c.ID = m.nextID
	m.byID[c.ID] = c
	return clone(c), nil
}

func (m *MemoryAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.byID {
		if strings.EqualFold(a.Email, email) {
			return clone(a), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MemoryAccounts) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(a), nil
}

// List returns accounts newest first, ties broken by descending id.
func (m *MemoryAccounts) List(_ context.Context, f domain.AccountFilter) ([]*domain.Account, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(f.Search)
	matched := make([]*domain.Account, 0, len(m.byID))
	for _, a := range m.byID {
		if needle != "" &&
			!strings.Contains(strings.ToLower(a.Name), needle) &&
			!strings.Contains(strings.ToLower(a.Email), needle) {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := min(max(f.Skip, 0), len(matched))
	end := len(matched)
	if f.Limit > 0 {
		end = min(start+f.Limit, end)
	}

	out := make([]*domain.Account, 0, end-start)
	for _, a := range matched[start:end] {
		out = append(out, clone(a))
	}
	return out, total, nil
}

func (m *MemoryAccounts) mutate(id int64, fn func(*domain.Account)) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	fn(a)
	a.UpdatedAt = m.now().UTC()
	return clone(a), nil
}

func (m *MemoryAccounts) UpdateRole(_ context.Context, id int64, role domain.Role) (*domain.Account, error) {
	return m.mutate(id, func(a *domain.Account) { a.Role = role })
}

func (m *MemoryAccounts) SetActive(_ context.Context, id int64, active bool) (*domain.Account, error) {
	return m.mutate(id, func(a *domain.Account) { a.IsActive = active })
}

func (m *MemoryAccounts) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *MemoryAccounts) Stats(context.Context) (domain.AccountStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s domain.AccountStats
	for _, a := range m.byID {
		s.TotalUsers++
		if a.IsActive {
			s.ActiveUsers++
		} else {
			s.SuspendedUsers++
		}
		if a.Role == domain.RoleAdmin {
			s.AdminUsers++
		}
	}
	return s, nil
}
