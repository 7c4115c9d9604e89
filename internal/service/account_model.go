package service

import (
	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/storage/account"
)

// AccountCreate is the input for opening an account.
type AccountCreate struct {
	UserID          uuid.UUID
	Name            string
	Type            account.AccountType
	Currency        string
	Description     string
	MinimumBalance  decimal.Decimal
	StartingBalance decimal.Decimal
}

// AccountUpdate is a partial update of the mutable account fields.
// Balance is deliberately absent: it changes only through AdjustBalance,
// SetBalance, and transaction cascades.
type AccountUpdate struct {
	Name           omit.Val[string]
	Type           omit.Val[account.AccountType]
	Currency       omit.Val[string]
	Description    omit.Val[string]
	MinimumBalance omit.Val[decimal.Decimal]
}

func (u AccountUpdate) isEmpty() bool {
	return !u.Name.IsValue() && !u.Type.IsValue() && !u.Currency.IsValue() &&
		!u.Description.IsValue() && !u.MinimumBalance.IsValue()
}

// AccountsFilter narrows ListAccounts. Nil/zero values mean "any".
type AccountsFilter struct {
	UserID   *uuid.UUID
	Type     account.AccountType
	Currency string
	Name     string
}
