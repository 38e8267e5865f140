package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// MemoryBanks keeps bank master data and uploaded logos in memory.
type MemoryBanks struct {
	mu     sync.RWMutex
	byID   map[int64]domain.Bank
	logos  map[string][]byte
	nextID int64
}

var _ ports.BankRepository = (*MemoryBanks)(nil)

func NewMemoryBanks() *MemoryBanks {
	return &MemoryBanks{byID: make(map[int64]domain.Bank), logos: make(map[string][]byte)}
}

// List returns banks ordered by name.
func (m *MemoryBanks) List(context.Context) ([]domain.Bank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Bank, 0, len(m.byID))
	for _, b := range m.byID {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryBanks) FindByID(_ context.Context, id int64) (domain.Bank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.byID[id]
	if !ok {
		return domain.Bank{}, domain.ErrBankNotFound
	}
	return b, nil
}

// Create rejects a name or code that is already taken, ignoring case.
func (m *MemoryBanks) Create(_ context.Context, bank domain.Bank) (domain.Bank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.byID {
		if strings.EqualFold(b.Name, bank.Name) || strings.EqualFold(b.Code, bank.Code) {
			return domain.Bank{}, domain.ErrBankExists
		}
	}
	m.nextID++
	bank.ID = m.nextID
	m.byID[bank.ID] = bank
	return bank, nil
}

func (m *MemoryBanks) Update(_ context.Context, id int64, settings domain.BankSettings) (domain.Bank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.byID[id]
	if !ok {
		return domain.Bank{}, domain.ErrBankNotFound
	}
	settings.Apply(&b)
	m.byID[id] = b
	return b, nil
}

// SetLogo stores data under filename and points the bank at it. A previous
// logo with another name is dropped.
func (m *MemoryBanks) SetLogo(_ context.Context, id int64, filename string, data []byte) (domain.Bank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.byID[id]
	if !ok {
		return domain.Bank{}, domain.ErrBankNotFound
	}
	if b.LogoFilename != "" && b.LogoFilename != filename {
		delete(m.logos, b.LogoFilename)
	}
	m.logos[filename] = append([]byte(nil), data...)
	b.LogoFilename = filename
	m.byID[id] = b
	return b, nil
}

func (m *MemoryBanks) Logo(_ context.Context, filename string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.logos[filename]
	if !ok {
		return nil, domain.ErrBankNotFound
	}
	return data, nil
}

func (m *MemoryBanks) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.byID[id]
	if !ok {
		return domain.ErrBankNotFound
	}
	delete(m.logos, b.LogoFilename)
	delete(m.byID, id)
	return nil
}
