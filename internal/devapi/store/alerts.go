package store

import (
	"context"
	"sort"
	"sync"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// MemoryAlerts keeps per-user alerts in memory.
type MemoryAlerts struct {
	mu     sync.RWMutex
	byID   map[int64]domain.Alert
	nextID int64
}

var _ ports.AlertRepository = (*MemoryAlerts)(nil)

func NewMemoryAlerts() *MemoryAlerts {
	return &MemoryAlerts{byID: make(map[int64]domain.Alert)}
}

// Add assigns ids in order and returns the stored alerts.
func (m *MemoryAlerts) Add(_ context.Context, alerts ...domain.Alert) ([]domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Alert, 0, len(alerts))
	for _, a := range alerts {
		m.nextID++
		a.ID = m.nextID
		m.byID[a.ID] = a
		out = append(out, a)
	}
	return out, nil
}

// List returns the user's alerts newest first. Total counts the alerts the
// filter matches; UnreadCount always counts every unread alert.
func (m *MemoryAlerts) List(_ context.Context, userID int64, f domain.AlertFilter) (domain.AlertInbox, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var inbox domain.AlertInbox
	matched := make([]domain.Alert, 0)
	for _, a := range m.byID {
		if a.UserID != userID {
			continue
		}
		if !a.IsRead {
			inbox.UnreadCount++
		}
		if f.UnreadOnly && a.IsRead {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	inbox.Total = int64(len(matched))
	start := min(max(f.Skip, 0), len(matched))
	end := len(matched)
	if f.Limit > 0 {
		end = min(start+f.Limit, end)
	}
	inbox.Alerts = append([]domain.Alert{}, matched[start:end]...)
	return inbox, nil
}

// MarkRead fails with ErrAlertNotFound for alerts of other users.
func (m *MemoryAlerts) MarkRead(_ context.Context, userID, alertID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.byID[alertID]
	if !ok || a.UserID != userID {
		return domain.ErrAlertNotFound
	}
	a.IsRead = true
	m.byID[alertID] = a
	return nil
}

// MarkAllRead returns how many alerts changed.
func (m *MemoryAlerts) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, a := range m.byID {
		if a.UserID == userID && !a.IsRead {
			a.IsRead = true
			m.byID[id] = a
			n++
		}
	}
	return n, nil
}

func (m *MemoryAlerts) DeleteForUser(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, a := range m.byID {
		if a.UserID == userID {
			delete(m.byID, id)
		}
	}
	return nil
}
