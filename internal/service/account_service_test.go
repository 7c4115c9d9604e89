package service

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

func TestCreateAccount_Success(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)

	created, err := svc.Account.CreateAccount(context.Background(), AccountCreate{
		UserID:          owner.ID,
		Name:            "Everyday",
		Type:            account.AccountTypeChecking,
		Currency:        "USD",
		MinimumBalance:  money("0"),
		StartingBalance: money("120.505"),
	})
	require.NoError(t, err)
	assert.True(t, created.Balance.Equal(money("120.51")), "starting balance is rounded to cents, got %s", created.Balance)
	assert.Equal(t, account.AccountTypeChecking, created.Type)
}

func TestCreateAccount_UserNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Account.CreateAccount(context.Background(), AccountCreate{
		UserID:          newID(),
		Name:            "Orphan",
		Type:            account.AccountTypeCash,
		StartingBalance: money("10"),
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateAccount_StartingBelowMinimum(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)

	_, err := svc.Account.CreateAccount(context.Background(), AccountCreate{
		UserID:          owner.ID,
		Name:            "Underfunded",
		Type:            account.AccountTypeSavings,
		MinimumBalance:  money("100"),
		StartingBalance: money("99.99"),
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateAccount_EmptyPayload(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "0")

	_, err := svc.Account.UpdateAccount(context.Background(), acct.ID, AccountUpdate{})
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateAccount_RaiseMinimumAboveBalance(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "0")

	_, err := svc.Account.UpdateAccount(context.Background(), acct.ID, AccountUpdate{
		MinimumBalance: omit.From(money("150")),
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateAccount_RaiseMinimumWithinBalance(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "0")

	updated, err := svc.Account.UpdateAccount(context.Background(), acct.ID, AccountUpdate{
		MinimumBalance: omit.From(money("50")),
	})
	require.NoError(t, err)
	assert.True(t, updated.MinimumBalance.Equal(money("50")))
}

func TestAdjustBalance_AppliesDelta(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "0")

	updated, err := svc.Account.AdjustBalance(context.Background(), acct.ID, money("-40.25"))
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(money("59.75")))
}

func TestAdjustBalance_BelowMinimum(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "50")

	_, err := svc.Account.AdjustBalance(context.Background(), acct.ID, money("-60"))
	assert.True(t, apperr.IsValidation(err))

	current, err := svc.Account.GetAccount(context.Background(), acct.ID)
	require.NoError(t, err)
	assert.True(t, current.Balance.Equal(money("100")), "rejected adjustment must not move the balance")
}

func TestSetBalance_Success(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "50")

	updated, err := svc.Account.SetBalance(context.Background(), acct.ID, money("75.005"))
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(money("75.01")))
}

func TestSetBalance_RoundsHalvesTowardPositive(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "0")

	// A negative half-cent rounds up to zero, not away to -0.01.
	updated, err := svc.Account.SetBalance(context.Background(), acct.ID, money("-0.005"))
	require.NoError(t, err)
	assert.True(t, updated.Balance.IsZero())
}

func TestDeleteAccount_Success(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "0")

	require.NoError(t, svc.Account.DeleteAccount(context.Background(), acct.ID))

	_, err := svc.Account.GetAccount(context.Background(), acct.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteAccount_WithTransactions(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "0")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)

	_, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: cat.ID,
		Amount:     money("10"),
		Type:       transaction.TransactionTypeExpense,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	err = svc.Account.DeleteAccount(context.Background(), acct.ID)
	assert.True(t, apperr.IsValidation(err))
}

func TestDeleteAccount_ReferencedAsTransferTarget(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	source := seedAccount(t, svc, owner.ID, "100", "0")
	target := seedAccount(t, svc, owner.ID, "0", "0")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)

	_, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:            owner.ID,
		AccountID:         source.ID,
		CategoryID:        cat.ID,
		TransferAccountID: target.ID,
		Amount:            money("25"),
		Type:              transaction.TransactionTypeTransfer,
		OccurredAt:        time.Now().UTC(),
	})
	require.NoError(t, err)

	err = svc.Account.DeleteAccount(context.Background(), target.ID)
	assert.True(t, apperr.IsValidation(err))
}
