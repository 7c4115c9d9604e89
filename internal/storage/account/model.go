package account

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
	AccountTypeInvestment AccountType = "INVESTMENT"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCash, AccountTypeCreditCard, AccountTypeInvestment:
		return true
	}
	return false
}

// Account represents an account record. Balance and MinimumBalance are
// normalized to 2 fraction digits.
type Account struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Type           AccountType
	Currency       string
	Description    string
	MinimumBalance decimal.Decimal
	Balance        decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AccountFilter specifies filters for listing accounts. Zero values mean "any".
// Name matching is substring and case-insensitive.
type AccountFilter struct {
	UserID   *uuid.UUID
	Type     AccountType
	Currency string
	Name     string
}

// AccountPatch is a partial update. Only set fields are written.
type AccountPatch struct {
	Name           omit.Val[string]
	Type           omit.Val[AccountType]
	Currency       omit.Val[string]
	Description    omit.Val[string]
	MinimumBalance omit.Val[decimal.Decimal]
	Balance        omit.Val[decimal.Decimal]
	UpdatedAt      omit.Val[time.Time]
}

// IAccountCollection defines the interface for account storage operations.
// This abstraction allows swapping the implementation (e.g. Mongo) without changing callers.
//
//go:generate mockery --name IAccountCollection --output mock_IAccountCollection.go
type IAccountCollection interface {
	Insert(ctx context.Context, record *Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
	Update(ctx context.Context, id uuid.UUID, patch *AccountPatch) (*Account, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
