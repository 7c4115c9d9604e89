package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// BudgetCreate is the input for creating a budget: an expense ceiling for
// one category in one (year, month) period.
type BudgetCreate struct {
	UserID          uuid.UUID
	CategoryID      uuid.UUID
	Year            int
	Month           time.Month
	Amount          decimal.Decimal
	AlertPercentage int
}

// BudgetUpdate is a partial update. Category and period are immutable.
type BudgetUpdate struct {
	Amount          omit.Val[decimal.Decimal]
	AlertPercentage omit.Val[int]
}

func (u BudgetUpdate) isEmpty() bool {
	return !u.Amount.IsValue() && !u.AlertPercentage.IsValue()
}

// BudgetsFilter narrows ListBudgets. Nil/zero values mean "any".
type BudgetsFilter struct {
	UserID     *uuid.UUID
	CategoryID *uuid.UUID
	Year       int
	Month      time.Month
}
