package transaction

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Memory is an in-memory ITransactionCollection used in tests and local runs.
type Memory struct {
	mutex        sync.RWMutex
	transactions map[uuid.UUID]Transaction
}

var _ ITransactionCollection = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{transactions: make(map[uuid.UUID]Transaction)}
}

func (m *Memory) Insert(_ context.Context, record *Transaction) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.transactions[record.ID] = *record
	return nil
}

func (m *Memory) FindByID(_ context.Context, id uuid.UUID) (*Transaction, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	record, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *Memory) List(_ context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Transaction
	for _, record := range m.transactions {
		if filter != nil {
			if filter.UserID != nil && record.UserID != *filter.UserID {
				continue
			}
			if filter.AccountID != nil && record.AccountID != *filter.AccountID {
				continue
			}
			if filter.CategoryID != nil && record.CategoryID != *filter.CategoryID {
				continue
			}
			if filter.Type != "" && record.Type != filter.Type {
				continue
			}
			if filter.From != nil && record.OccurredAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !record.OccurredAt.Before(*filter.To) {
				continue
			}
		}
		copied := record
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].OccurredAt.Equal(result[j].OccurredAt) {
			return result[i].OccurredAt.After(result[j].OccurredAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (m *Memory) Update(_ context.Context, id uuid.UUID, patch *TransactionPatch) (*Transaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	record, ok := m.transactions[id]
	if !ok {
		return nil, nil
	}
	if v, ok := patch.AccountID.Get(); ok {
		record.AccountID = v
	}
	if v, ok := patch.CategoryID.Get(); ok {
		record.CategoryID = v
	}
	if v, ok := patch.TransferAccountID.Get(); ok {
		record.TransferAccountID = v
	}
	if v, ok := patch.Amount.Get(); ok {
		record.Amount = v
	}
	if v, ok := patch.Type.Get(); ok {
		record.Type = v
	}
	if v, ok := patch.OccurredAt.Get(); ok {
		record.OccurredAt = v
	}
	if v, ok := patch.Description.Get(); ok {
		record.Description = v
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		record.UpdatedAt = v
	}
	m.transactions[id] = record
	result := record
	return &result, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return false, nil
	}
	delete(m.transactions, id)
	return true, nil
}

func (m *Memory) ExistsForAccount(_ context.Context, accountID uuid.UUID) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, record := range m.transactions {
		if record.AccountID == accountID || record.TransferAccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) ExistsForCategory(_ context.Context, categoryID uuid.UUID) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, record := range m.transactions {
		if record.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) ExistsForCategoryPeriod(_ context.Context, categoryID uuid.UUID, year int, month time.Month) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, record := range m.transactions {
		if record.CategoryID == categoryID && inPeriod(record.OccurredAt, year, month) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) SumForCategoryPeriod(_ context.Context, categoryID uuid.UUID, year int, month time.Month, txType TransactionType, excludeID uuid.UUID) (decimal.Decimal, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	total := decimal.Zero
	for _, record := range m.transactions {
		if record.ID == excludeID {
			continue
		}
		if record.CategoryID != categoryID || record.Type != txType {
			continue
		}
		if !inPeriod(record.OccurredAt, year, month) {
			continue
		}
		total = total.Add(record.Amount)
	}
	return total, nil
}

func inPeriod(occurredAt time.Time, year int, month time.Month) bool {
	utc := occurredAt.UTC()
	return utc.Year() == year && utc.Month() == month
}
