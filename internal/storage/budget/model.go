package budget

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Budget represents a budget record: a spending ceiling for an expense
// category within one (year, month) period. At most one budget exists per
// (user, category, year, month) tuple.
type Budget struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CategoryID      uuid.UUID
	Year            int
	Month           time.Month
	Amount          decimal.Decimal
	AlertPercentage int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BudgetFilter specifies filters for listing budgets. Nil/zero values mean "any".
type BudgetFilter struct {
	UserID     *uuid.UUID
	CategoryID *uuid.UUID
	Year       int
	Month      time.Month
}

// BudgetPatch is a partial update. Only set fields are written.
// The period and category are immutable once created.
type BudgetPatch struct {
	Amount          omit.Val[decimal.Decimal]
	AlertPercentage omit.Val[int]
	UpdatedAt       omit.Val[time.Time]
}

// IBudgetCollection defines the interface for budget storage operations.
// This abstraction allows swapping the implementation (e.g. Mongo) without changing callers.
//
//go:generate mockery --name IBudgetCollection --output mock_IBudgetCollection.go
type IBudgetCollection interface {
	Insert(ctx context.Context, record *Budget) error
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	FindByPeriod(ctx context.Context, userID, categoryID uuid.UUID, year int, month time.Month) (*Budget, error)
	List(ctx context.Context, filter *BudgetFilter) ([]*Budget, error)
	Update(ctx context.Context, id uuid.UUID, patch *BudgetPatch) (*Budget, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
