package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// newTestService wires the full service aggregate against in-memory
// collections and a running single-worker mutator.
func newTestService(t *testing.T) *Service {
	t.Helper()

	store := &storage.Storage{
		Users:        user.NewMemory(),
		Accounts:     account.NewMemory(),
		Categories:   category.NewMemory(),
		Budgets:      budget.NewMemory(),
		Transactions: transaction.NewMemory(),
	}
	mutator := operator.NewOperatorDelegator(1)
	mutator.Start()
	t.Cleanup(mutator.Stop)

	return NewService(store, mutator)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedUser(t *testing.T, svc *Service) *user.User {
	t.Helper()
	record, err := svc.User.CreateUser(context.Background(), UserCreate{
		Name:            "Test User",
		Email:           newID().String() + "@example.com",
		DefaultCurrency: "USD",
	})
	require.NoError(t, err)
	return record
}

func seedAccount(t *testing.T, svc *Service, userID uuid.UUID, balance, minimum string) *account.Account {
	t.Helper()
	record, err := svc.Account.CreateAccount(context.Background(), AccountCreate{
		UserID:          userID,
		Name:            "Checking " + newID().String()[:8],
		Type:            account.AccountTypeChecking,
		Currency:        "USD",
		MinimumBalance:  money(minimum),
		StartingBalance: money(balance),
	})
	require.NoError(t, err)
	return record
}

func seedCategory(t *testing.T, svc *Service, userID uuid.UUID, categoryType category.CategoryType) *category.Category {
	t.Helper()
	record, err := svc.Category.CreateCategory(context.Background(), CategoryCreate{
		UserID: userID,
		Name:   "Category " + newID().String()[:8],
		Type:   categoryType,
	})
	require.NoError(t, err)
	return record
}
