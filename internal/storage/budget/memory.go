package budget

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Memory is an in-memory IBudgetCollection used in tests and local runs.
type Memory struct {
	mutex   sync.RWMutex
	budgets map[uuid.UUID]Budget
}

var _ IBudgetCollection = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{budgets: make(map[uuid.UUID]Budget)}
}

func (m *Memory) Insert(_ context.Context, record *Budget) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.budgets[record.ID] = *record
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID) (*Budget, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	record, ok := m.budgets[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *Memory) FindByPeriod(_ context.Context, userID, categoryID uuid.UUID, year int, month time.Month) (*Budget, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, record := range m.budgets {
		if record.UserID == userID && record.CategoryID == categoryID && record.Year == year && record.Month == month {
			result := record
			return &result, nil
		}
	}
	return nil, nil
}

func (m *Memory) List(_ context.Context, filter *BudgetFilter) ([]*Budget, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Budget
	for _, record := range m.budgets {
		if filter != nil {
			if filter.UserID != nil && record.UserID != *filter.UserID {
				continue
			}
			if filter.CategoryID != nil && record.CategoryID != *filter.CategoryID {
				continue
			}
			if filter.Year != 0 && record.Year != filter.Year {
				continue
			}
			if filter.Month != 0 && record.Month != filter.Month {
				continue
			}
		}
		copied := record
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		if result[i].Month != result[j].Month {
			return result[i].Month < result[j].Month
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (m *Memory) Update(_ context.Context, id uuid.UUID, patch *BudgetPatch) (*Budget, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	record, ok := m.budgets[id]
	if !ok {
		return nil, nil
	}
	if v, ok := patch.Amount.Get(); ok {
		record.Amount = v
	}
	if v, ok := patch.AlertPercentage.Get(); ok {
		record.AlertPercentage = v
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		record.UpdatedAt = v
	}
	m.budgets[id] = record
	result := record
	return &result, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.budgets[id]; !ok {
		return false, nil
	}
	delete(m.budgets, id)
	return true, nil
}
