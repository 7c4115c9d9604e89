package service

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

func expenseCreate(svc *Service, t *testing.T, amount string) (TransactionCreate, *Service) {
	t.Helper()
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "500", "0")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)
	return TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: cat.ID,
		Amount:     money(amount),
		Type:       transaction.TransactionTypeExpense,
		OccurredAt: time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC),
	}, svc
}

func accountBalance(t *testing.T, svc *Service, id uuid.UUID) string {
	t.Helper()
	acct, err := svc.Account.GetAccount(context.Background(), id)
	require.NoError(t, err)
	return acct.Balance.String()
}

func TestCreateTransaction_ExpenseDebitsAccount(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "42.50")

	created, err := svc.Transaction.CreateTransaction(context.Background(), create)
	require.NoError(t, err)
	assert.True(t, created.Amount.Equal(money("42.50")))

	assert.Equal(t, "457.5", accountBalance(t, svc, create.AccountID))
}

func TestCreateTransaction_IncomeCreditsAccount(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "0")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeIncome)

	_, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: cat.ID,
		Amount:     money("250.255"),
		Type:       transaction.TransactionTypeIncome,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.Equal(t, "350.26", accountBalance(t, svc, acct.ID), "income amount is rounded to cents before crediting")
}

func TestCreateTransaction_TransferMovesBalance(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	source := seedAccount(t, svc, owner.ID, "300", "0")
	target := seedAccount(t, svc, owner.ID, "50", "0")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)

	_, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:            owner.ID,
		AccountID:         source.ID,
		CategoryID:        cat.ID,
		TransferAccountID: target.ID,
		Amount:            money("120"),
		Type:              transaction.TransactionTypeTransfer,
		OccurredAt:        time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.Equal(t, "180", accountBalance(t, svc, source.ID))
	assert.Equal(t, "170", accountBalance(t, svc, target.ID))
}

func TestCreateTransaction_AmountNotPositive(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "0")

	_, err := svc.Transaction.CreateTransaction(context.Background(), create)
	assert.True(t, apperr.IsValidation(err))

	create.Amount = money("-5")
	_, err = svc.Transaction.CreateTransaction(context.Background(), create)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateTransaction_UserNotFound(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "10")
	create.UserID = newID()

	_, err := svc.Transaction.CreateTransaction(context.Background(), create)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateTransaction_AccountNotFound(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "10")
	create.AccountID = newID()

	_, err := svc.Transaction.CreateTransaction(context.Background(), create)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateTransaction_CategoryTypeMismatch(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "10")
	incomeCat := seedCategory(t, svc, create.UserID, category.CategoryTypeIncome)
	create.CategoryID = incomeCat.ID

	_, err := svc.Transaction.CreateTransaction(context.Background(), create)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateTransaction_TransferAccountOnNonTransfer(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "10")
	other := seedAccount(t, svc, create.UserID, "0", "0")
	create.TransferAccountID = other.ID

	_, err := svc.Transaction.CreateTransaction(context.Background(), create)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateTransaction_TransferAccountRequired(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "10")
	create.Type = transaction.TransactionTypeTransfer

	_, err := svc.Transaction.CreateTransaction(context.Background(), create)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateTransaction_TransferSameAccount(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "10")
	create.Type = transaction.TransactionTypeTransfer
	create.TransferAccountID = create.AccountID

	_, err := svc.Transaction.CreateTransaction(context.Background(), create)
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateTransaction_TransferAccountNotFound(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "10")
	create.Type = transaction.TransactionTypeTransfer
	create.TransferAccountID = newID()

	_, err := svc.Transaction.CreateTransaction(context.Background(), create)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateTransaction_BalanceBelowMinimum(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "500", "100")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)

	// 500 - 450 = 50 < 100: rejected and nothing persisted.
	_, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: cat.ID,
		Amount:     money("450"),
		Type:       transaction.TransactionTypeExpense,
		OccurredAt: time.Now().UTC(),
	})
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "500", accountBalance(t, svc, acct.ID))

	listed, err := svc.Transaction.ListTransactions(context.Background(), TransactionsFilter{UserID: &owner.ID})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCreateTransaction_BudgetCeilingExceeded(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "1000", "0")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)

	_, err := svc.Budget.CreateBudget(context.Background(), BudgetCreate{
		UserID:     owner.ID,
		CategoryID: cat.ID,
		Year:       2026,
		Month:      time.March,
		Amount:     money("200"),
	})
	require.NoError(t, err)

	occurred := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	spend := func(amount string) error {
		_, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
			UserID:     owner.ID,
			AccountID:  acct.ID,
			CategoryID: cat.ID,
			Amount:     money(amount),
			Type:       transaction.TransactionTypeExpense,
			OccurredAt: occurred,
		})
		return err
	}

	require.NoError(t, spend("180"))

	// 180 + 50 = 230 > 200: rejected, balance untouched by the attempt.
	err = spend("50")
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "820", accountBalance(t, svc, acct.ID))

	// 180 + 20 = 200 is exactly at the ceiling.
	assert.NoError(t, spend("20"))
}

func TestCreateTransaction_BudgetIgnoresOtherPeriods(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "1000", "0")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)

	_, err := svc.Budget.CreateBudget(context.Background(), BudgetCreate{
		UserID:     owner.ID,
		CategoryID: cat.ID,
		Year:       2026,
		Month:      time.March,
		Amount:     money("200"),
	})
	require.NoError(t, err)

	// April spend is not covered by the March budget.
	_, err = svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: cat.ID,
		Amount:     money("999"),
		Type:       transaction.TransactionTypeExpense,
		OccurredAt: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}

func TestUpdateTransaction_EmptyPayload(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Transaction.UpdateTransaction(context.Background(), newID(), TransactionUpdate{})
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Transaction.UpdateTransaction(context.Background(), newID(), TransactionUpdate{
		Amount: omit.From(money("10")),
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateTransaction_AmountChangeAdjustsBalance(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "100")

	created, err := svc.Transaction.CreateTransaction(context.Background(), create)
	require.NoError(t, err)
	require.Equal(t, "400", accountBalance(t, svc, create.AccountID))

	updated, err := svc.Transaction.UpdateTransaction(context.Background(), created.ID, TransactionUpdate{
		Amount: omit.From(money("60")),
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(money("60")))

	// The 100 debit is replaced by a 60 debit.
	assert.Equal(t, "440", accountBalance(t, svc, create.AccountID))
}

func TestUpdateTransaction_BudgetExcludesOwnOldAmount(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "1000", "0")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)

	_, err := svc.Budget.CreateBudget(context.Background(), BudgetCreate{
		UserID:     owner.ID,
		CategoryID: cat.ID,
		Year:       2026,
		Month:      time.March,
		Amount:     money("200"),
	})
	require.NoError(t, err)

	created, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: cat.ID,
		Amount:     money("180"),
		Type:       transaction.TransactionTypeExpense,
		OccurredAt: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 190 replaces 180 in the period sum; counting the old record too
	// would read 370 and wrongly reject.
	updated, err := svc.Transaction.UpdateTransaction(context.Background(), created.ID, TransactionUpdate{
		Amount: omit.From(money("190")),
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(money("190")))
	assert.Equal(t, "810", accountBalance(t, svc, acct.ID))
}

func TestUpdateTransaction_BudgetCeilingExceeded(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "1000", "0")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)

	_, err := svc.Budget.CreateBudget(context.Background(), BudgetCreate{
		UserID:     owner.ID,
		CategoryID: cat.ID,
		Year:       2026,
		Month:      time.March,
		Amount:     money("200"),
	})
	require.NoError(t, err)

	created, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: cat.ID,
		Amount:     money("180"),
		Type:       transaction.TransactionTypeExpense,
		OccurredAt: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Raising to 250 would breach the 200 ceiling on its own.
	_, err = svc.Transaction.UpdateTransaction(context.Background(), created.ID, TransactionUpdate{
		Amount: omit.From(money("250")),
	})
	assert.True(t, apperr.IsValidation(err))

	current, err := svc.Transaction.GetTransaction(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, current.Amount.Equal(money("180")), "rejected update must not change the record")
	assert.Equal(t, "820", accountBalance(t, svc, acct.ID), "rejected update must not move the balance")
}

func TestUpdateTransaction_MoveToOtherAccount(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "100")
	other := seedAccount(t, svc, create.UserID, "500", "0")

	created, err := svc.Transaction.CreateTransaction(context.Background(), create)
	require.NoError(t, err)

	_, err = svc.Transaction.UpdateTransaction(context.Background(), created.ID, TransactionUpdate{
		AccountID: omit.From(other.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, "500", accountBalance(t, svc, create.AccountID), "old account is restored")
	assert.Equal(t, "400", accountBalance(t, svc, other.ID), "new account carries the debit")
}

func TestUpdateTransaction_TypeChangeToTransfer(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "100")
	target := seedAccount(t, svc, create.UserID, "0", "0")

	created, err := svc.Transaction.CreateTransaction(context.Background(), create)
	require.NoError(t, err)

	updated, err := svc.Transaction.UpdateTransaction(context.Background(), created.ID, TransactionUpdate{
		Type:              omit.From(transaction.TransactionTypeTransfer),
		TransferAccountID: omit.From(target.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, transaction.TransactionTypeTransfer, updated.Type)

	// Source keeps the 100 debit; the target gains the credit.
	assert.Equal(t, "400", accountBalance(t, svc, create.AccountID))
	assert.Equal(t, "100", accountBalance(t, svc, target.ID))
}

func TestUpdateTransaction_LeavingTransferDropsTarget(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	source := seedAccount(t, svc, owner.ID, "300", "0")
	target := seedAccount(t, svc, owner.ID, "0", "0")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)

	created, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:            owner.ID,
		AccountID:         source.ID,
		CategoryID:        cat.ID,
		TransferAccountID: target.ID,
		Amount:            money("100"),
		Type:              transaction.TransactionTypeTransfer,
		OccurredAt:        time.Now().UTC(),
	})
	require.NoError(t, err)

	updated, err := svc.Transaction.UpdateTransaction(context.Background(), created.ID, TransactionUpdate{
		Type: omit.From(transaction.TransactionTypeExpense),
	})
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, updated.TransferAccountID)

	// Source keeps the debit; the target's credit is reversed.
	assert.Equal(t, "200", accountBalance(t, svc, source.ID))
	assert.Equal(t, "0", accountBalance(t, svc, target.ID))
}

func TestUpdateTransaction_RejectedWhenMinimumBreached(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "500", "100")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)

	created, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: cat.ID,
		Amount:     money("100"),
		Type:       transaction.TransactionTypeExpense,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.Equal(t, "400", accountBalance(t, svc, acct.ID))

	// Raising the debit to 450 would net -350 on a 400 balance: 50 < 100.
	_, err = svc.Transaction.UpdateTransaction(context.Background(), created.ID, TransactionUpdate{
		Amount: omit.From(money("450")),
	})
	assert.True(t, apperr.IsValidation(err))

	assert.Equal(t, "400", accountBalance(t, svc, acct.ID))
	current, err := svc.Transaction.GetTransaction(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, current.Amount.Equal(money("100")), "rejected update leaves the stored amount intact")
}

func TestDeleteTransaction_RestoresBalance(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "75")

	created, err := svc.Transaction.CreateTransaction(context.Background(), create)
	require.NoError(t, err)
	require.Equal(t, "425", accountBalance(t, svc, create.AccountID))

	require.NoError(t, svc.Transaction.DeleteTransaction(context.Background(), created.ID))
	assert.Equal(t, "500", accountBalance(t, svc, create.AccountID))

	_, err = svc.Transaction.GetTransaction(context.Background(), created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteTransaction_IncomeReversalBelowMinimum(t *testing.T) {
	svc := newTestService(t)
	owner := seedUser(t, svc)
	acct := seedAccount(t, svc, owner.ID, "100", "100")
	cat := seedCategory(t, svc, owner.ID, category.CategoryTypeIncome)

	created, err := svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: cat.ID,
		Amount:     money("50"),
		Type:       transaction.TransactionTypeIncome,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.Equal(t, "150", accountBalance(t, svc, acct.ID))

	// Reversing the 50 credit would land at 100, exactly the minimum: allowed.
	require.NoError(t, svc.Transaction.DeleteTransaction(context.Background(), created.ID))

	created, err = svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: cat.ID,
		Amount:     money("50"),
		Type:       transaction.TransactionTypeIncome,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// Spend the credited funds, then deleting the income would breach the floor.
	expenseCat := seedCategory(t, svc, owner.ID, category.CategoryTypeExpense)
	_, err = svc.Transaction.CreateTransaction(context.Background(), TransactionCreate{
		UserID:     owner.ID,
		AccountID:  acct.ID,
		CategoryID: expenseCat.ID,
		Amount:     money("40"),
		Type:       transaction.TransactionTypeExpense,
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.Equal(t, "110", accountBalance(t, svc, acct.ID))

	err = svc.Transaction.DeleteTransaction(context.Background(), created.ID)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "110", accountBalance(t, svc, acct.ID))

	_, err = svc.Transaction.GetTransaction(context.Background(), created.ID)
	assert.NoError(t, err, "rejected delete keeps the transaction")
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.Transaction.DeleteTransaction(context.Background(), newID())
	assert.True(t, apperr.IsNotFound(err))
}

func TestListTransactions_FilterByDateRange(t *testing.T) {
	create, svc := expenseCreate(newTestService(t), t, "10")

	march := create
	march.OccurredAt = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Transaction.CreateTransaction(context.Background(), march)
	require.NoError(t, err)

	april := create
	april.OccurredAt = time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	_, err = svc.Transaction.CreateTransaction(context.Background(), april)
	require.NoError(t, err)

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	listed, err := svc.Transaction.ListTransactions(context.Background(), TransactionsFilter{
		UserID: &create.UserID,
		From:   &from,
		To:     &to,
	})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, march.OccurredAt, listed[0].OccurredAt)
}
