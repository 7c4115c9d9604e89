package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// TransactionCreate is the input for recording a transaction.
// TransferAccountID is required (and must differ from AccountID) when the
// type is TRANSFER, and must be absent otherwise.
type TransactionCreate struct {
	UserID            uuid.UUID
	AccountID         uuid.UUID
	CategoryID        uuid.UUID
	TransferAccountID uuid.UUID
	Amount            decimal.Decimal
	Type              transaction.TransactionType
	OccurredAt        time.Time
	Description       string
}

// TransactionUpdate is a partial update. Fields not set keep the stored
// value; the updated state is then re-validated exactly like a creation.
type TransactionUpdate struct {
	AccountID         omit.Val[uuid.UUID]
	CategoryID        omit.Val[uuid.UUID]
	TransferAccountID omit.Val[uuid.UUID]
	Amount            omit.Val[decimal.Decimal]
	Type              omit.Val[transaction.TransactionType]
	OccurredAt        omit.Val[time.Time]
	Description       omit.Val[string]
}

func (u TransactionUpdate) isEmpty() bool {
	return !u.AccountID.IsValue() && !u.CategoryID.IsValue() && !u.TransferAccountID.IsValue() &&
		!u.Amount.IsValue() && !u.Type.IsValue() && !u.OccurredAt.IsValue() && !u.Description.IsValue()
}

// TransactionsFilter narrows ListTransactions. Nil/zero values mean "any".
// From is inclusive, To exclusive.
type TransactionsFilter struct {
	UserID     *uuid.UUID
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       transaction.TransactionType
	From       *time.Time
	To         *time.Time
}

// balanceLeg is one account-level balance effect of a transaction.
type balanceLeg struct {
	accountID uuid.UUID
	delta     decimal.Decimal
}

// cascadeLegs returns the balance effects of a transaction: an expense
// debits its account, an income credits it, and a transfer debits the
// source and credits the target.
func cascadeLegs(t *transaction.Transaction) []balanceLeg {
	switch t.Type {
	case transaction.TransactionTypeExpense:
		return []balanceLeg{{t.AccountID, t.Amount.Neg()}}
	case transaction.TransactionTypeIncome:
		return []balanceLeg{{t.AccountID, t.Amount}}
	case transaction.TransactionTypeTransfer:
		return []balanceLeg{
			{t.AccountID, t.Amount.Neg()},
			{t.TransferAccountID, t.Amount},
		}
	}
	return nil
}

// reversedLegs negates each leg, producing the inverse cascade.
func reversedLegs(legs []balanceLeg) []balanceLeg {
	out := make([]balanceLeg, len(legs))
	for i, leg := range legs {
		out[i] = balanceLeg{leg.accountID, leg.delta.Neg()}
	}
	return out
}

// netLegs merges leg sets into at most one leg per account, dropping
// accounts whose deltas cancel out. Ordering follows first appearance.
func netLegs(legSets ...[]balanceLeg) []balanceLeg {
	var order []uuid.UUID
	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, legs := range legSets {
		for _, leg := range legs {
			if _, seen := totals[leg.accountID]; !seen {
				order = append(order, leg.accountID)
			}
			totals[leg.accountID] = totals[leg.accountID].Add(leg.delta)
		}
	}

	out := make([]balanceLeg, 0, len(order))
	for _, accountID := range order {
		if totals[accountID].IsZero() {
			continue
		}
		out = append(out, balanceLeg{accountID, totals[accountID]})
	}
	return out
}
