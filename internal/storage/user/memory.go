package user

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
)

// Memory is an in-memory IUserCollection used in tests and local runs.
type Memory struct {
	mutex sync.RWMutex
	users map[uuid.UUID]User
}

var _ IUserCollection = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{users: make(map[uuid.UUID]User)}
}

func (m *Memory) Insert(_ context.Context, record *User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.users[record.ID] = *record
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	record, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, record := range m.users {
		if record.Email == email {
			result := record
			return &result, nil
		}
	}
	return nil, nil
}

func (m *Memory) List(_ context.Context, filter *UserFilter) ([]*User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*User
	for _, record := range m.users {
		if filter != nil {
			if filter.Name != "" && !strings.Contains(strings.ToLower(record.Name), strings.ToLower(filter.Name)) {
				continue
			}
			if filter.Email != "" && record.Email != filter.Email {
				continue
			}
		}
		copied := record
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *Memory) Update(_ context.Context, id uuid.UUID, patch *UserPatch) (*User, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	record, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if v, ok := patch.Name.Get(); ok {
		record.Name = v
	}
	if v, ok := patch.DefaultCurrency.Get(); ok {
		record.DefaultCurrency = v
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		record.UpdatedAt = v
	}
	m.users[id] = record
	result := record
	return &result, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}
