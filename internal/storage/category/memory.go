package category

import (
	"context"
	"sort"
	"sync"

	"github.com/gofrs/uuid/v5"
)

// Memory is an in-memory ICategoryCollection used in tests and local runs.
type Memory struct {
	mutex      sync.RWMutex
	categories map[uuid.UUID]Category
}

var _ ICategoryCollection = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{categories: make(map[uuid.UUID]Category)}
}

func (m *Memory) Insert(_ context.Context, record *Category) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.categories[record.ID] = *record
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID) (*Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	record, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *Memory) List(_ context.Context, filter *CategoryFilter) ([]*Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Category
	for _, record := range m.categories {
		if filter != nil {
			if filter.UserID != nil && record.UserID != *filter.UserID {
				continue
			}
			if filter.Type != "" && record.Type != filter.Type {
				continue
			}
			if filter.ParentID != nil && record.ParentID != *filter.ParentID {
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

func (m *Memory) Update(_ context.Context, id uuid.UUID, patch *CategoryPatch) (*Category, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	record, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	if v, ok := patch.Name.Get(); ok {
		record.Name = v
	}
	if v, ok := patch.ParentID.Get(); ok {
		record.ParentID = v
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		record.UpdatedAt = v
	}
	m.categories[id] = record
	result := record
	return &result, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.categories[id]; !ok {
		return false, nil
	}
	delete(m.categories, id)
	return true, nil
}
