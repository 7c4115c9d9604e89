package account

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
)

// Memory is an in-memory IAccountCollection used in tests and local runs.
type Memory struct {
	mutex    sync.RWMutex
	accounts map[uuid.UUID]Account
}

var _ IAccountCollection = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{accounts: make(map[uuid.UUID]Account)}
}

func (m *Memory) Insert(_ context.Context, record *Account) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.accounts[record.ID] = *record
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID) (*Account, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	record, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *Memory) List(_ context.Context, filter *AccountFilter) ([]*Account, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Account
	for _, record := range m.accounts {
		if filter != nil {
			if filter.UserID != nil && record.UserID != *filter.UserID {
				continue
			}
			if filter.Type != "" && record.Type != filter.Type {
				continue
			}
			if filter.Currency != "" && record.Currency != filter.Currency {
				continue
			}
			if filter.Name != "" && !strings.Contains(strings.ToLower(record.Name), strings.ToLower(filter.Name)) {
				continue
			}
		}
		copied := record
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (m *Memory) Update(_ context.Context, id uuid.UUID, patch *AccountPatch) (*Account, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	record, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	if v, ok := patch.Name.Get(); ok {
		record.Name = v
	}
	if v, ok := patch.Type.Get(); ok {
		record.Type = v
	}
	if v, ok := patch.Currency.Get(); ok {
		record.Currency = v
	}
	if v, ok := patch.Description.Get(); ok {
		record.Description = v
	}
	if v, ok := patch.MinimumBalance.Get(); ok {
		record.MinimumBalance = v
	}
	if v, ok := patch.Balance.Get(); ok {
		record.Balance = v
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		record.UpdatedAt = v
	}
	m.accounts[id] = record
	result := record
	return &result, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return false, nil
	}
	delete(m.accounts, id)
	return true, nil
}
