package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction represents a transaction record. TransferAccountID is
// uuid.Nil except for TRANSFER transactions, where it names the credited
// account. Amount is always positive; the type decides the direction.
type Transaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	AccountID         uuid.UUID
	CategoryID        uuid.UUID
	TransferAccountID uuid.UUID
	Amount            decimal.Decimal
	Type              TransactionType
	OccurredAt        time.Time
	Description       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TransactionFilter specifies filters for listing transactions.
// Nil/zero values mean "any". From is inclusive, To exclusive.
type TransactionFilter struct {
	UserID     *uuid.UUID
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       TransactionType
	From       *time.Time
	To         *time.Time
}

// TransactionPatch is a partial update. Only set fields are written.
type TransactionPatch struct {
	AccountID         omit.Val[uuid.UUID]
	CategoryID        omit.Val[uuid.UUID]
	TransferAccountID omit.Val[uuid.UUID]
	Amount            omit.Val[decimal.Decimal]
	Type              omit.Val[TransactionType]
	OccurredAt        omit.Val[time.Time]
	Description       omit.Val[string]
	UpdatedAt         omit.Val[time.Time]
}

// ITransactionCollection defines the interface for transaction storage
// operations. Beyond plain CRUD it answers the referential-guard and
// budget-aggregation questions the services ask.
//
//go:generate mockery --name ITransactionCollection --output mock_ITransactionCollection.go
type ITransactionCollection interface {
	Insert(ctx context.Context, record *Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) (*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsForAccount reports whether any transaction debits or credits
	// the given account, including as a transfer target.
	ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error)
	// ExistsForCategory reports whether any transaction references the category.
	ExistsForCategory(ctx context.Context, categoryID uuid.UUID) (bool, error)
	// ExistsForCategoryPeriod reports whether any transaction in the
	// category occurred within the (year, month) period.
	ExistsForCategoryPeriod(ctx context.Context, categoryID uuid.UUID, year int, month time.Month) (bool, error)
	// SumForCategoryPeriod totals the amounts of transactions of the given
	// type in the category and period. A non-nil excludeID leaves that
	// record out of the total.
	SumForCategoryPeriod(ctx context.Context, categoryID uuid.UUID, year int, month time.Month, txType TransactionType, excludeID uuid.UUID) (decimal.Decimal, error)
}

// PeriodBounds returns the [start, end) UTC interval covering a
// (year, month) period.
func PeriodBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
