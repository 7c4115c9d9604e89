package service

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// balanceAdjuster is the narrow slice of AccountService the transaction
// cascades need.
type balanceAdjuster interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*account.Account, error)
}

// budgetGuard is the narrow slice of BudgetService the expense checks need.
type budgetGuard interface {
	EnsureExpenseWithinBudget(ctx context.Context, userID, categoryID uuid.UUID, occurredAt time.Time, amount decimal.Decimal, excludeID uuid.UUID) error
}

// TransactionService orchestrates transaction CRUD together with the
// balance cascades on one or two accounts and the budget-ceiling check.
// Mutating operations run through the operator queue so cascades cannot
// interleave in-process.
type TransactionService struct {
	storage  *storage.Storage
	accounts balanceAdjuster
	budgets  budgetGuard
	mutator  *operator.OperatorDelegator
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, accounts balanceAdjuster, budgets budgetGuard, mutator *operator.OperatorDelegator) *TransactionService {
	return &TransactionService{
		storage:  store,
		accounts: accounts,
		budgets:  budgets,
		mutator:  mutator,
	}
}

// CreateTransaction validates, persists, and cascades a new transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, create TransactionCreate) (*transaction.Transaction, error) {
	var created *transaction.Transaction
	err := s.mutator.Process(ctx, operator.ActionFunc(func(ctx context.Context) error {
		record, err := s.createTransaction(ctx, create)
		if err != nil {
			return err
		}
		created = record
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *TransactionService) createTransaction(ctx context.Context, create TransactionCreate) (*transaction.Transaction, error) {
	now := time.Now().UTC()
	record := &transaction.Transaction{
		ID:                newID(),
		UserID:            create.UserID,
		AccountID:         create.AccountID,
		CategoryID:        create.CategoryID,
		TransferAccountID: create.TransferAccountID,
		Amount:            round2(create.Amount),
		Type:              create.Type,
		OccurredAt:        create.OccurredAt,
		Description:       create.Description,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.validateTransaction(ctx, record); err != nil {
		return nil, err
	}
	if err := s.checkBudget(ctx, record, uuid.Nil); err != nil {
		return nil, err
	}

	legs := netLegs(cascadeLegs(record))
	if err := s.checkLegs(ctx, legs); err != nil {
		return nil, err
	}

	if err := s.storage.Transactions.Insert(ctx, record); err != nil {
		return nil, err
	}
	if err := s.applyLegs(ctx, legs); err != nil {
		// The record must not survive without its balance effects.
		_, _ = s.storage.Transactions.Delete(ctx, record.ID)
		return nil, err
	}
	return record, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	record, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.NotFound("transaction not found", map[string]string{"id": id.String()})
	}
	return record, nil
}

// ListTransactions returns transactions matching the non-empty filter fields.
func (s *TransactionService) ListTransactions(ctx context.Context, filter TransactionsFilter) ([]*transaction.Transaction, error) {
	storageFilter := &transaction.TransactionFilter{
		UserID:     filter.UserID,
		AccountID:  filter.AccountID,
		CategoryID: filter.CategoryID,
		Type:       filter.Type,
		From:       filter.From,
		To:         filter.To,
	}
	return s.storage.Transactions.List(ctx, storageFilter)
}

// UpdateTransaction reverses the stored transaction's balance effects,
// re-validates the patched state like a creation, applies the new
// effects, and persists the new state.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, update TransactionUpdate) (*transaction.Transaction, error) {
	var updated *transaction.Transaction
	err := s.mutator.Process(ctx, operator.ActionFunc(func(ctx context.Context) error {
		record, err := s.updateTransaction(ctx, id, update)
		if err != nil {
			return err
		}
		updated = record
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TransactionService) updateTransaction(ctx context.Context, id uuid.UUID, update TransactionUpdate) (*transaction.Transaction, error) {
	if update.isEmpty() {
		return nil, apperr.Validation("update payload is empty", map[string]string{"id": id.String()})
	}

	existing, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *existing
	if v, ok := update.AccountID.Get(); ok {
		next.AccountID = v
	}
	if v, ok := update.CategoryID.Get(); ok {
		next.CategoryID = v
	}
	if v, ok := update.TransferAccountID.Get(); ok {
		next.TransferAccountID = v
	}
	if v, ok := update.Amount.Get(); ok {
		next.Amount = round2(v)
	}
	if v, ok := update.Type.Get(); ok {
		next.Type = v
	}
	if v, ok := update.OccurredAt.Get(); ok {
		next.OccurredAt = v
	}
	if v, ok := update.Description.Get(); ok {
		next.Description = v
	}
	// Leaving TRANSFER implicitly drops the stored transfer target unless
	// the payload names one.
	if next.Type != transaction.TransactionTypeTransfer && !update.TransferAccountID.IsValue() {
		next.TransferAccountID = uuid.Nil
	}
	next.UpdatedAt = time.Now().UTC()

	if err := s.validateTransaction(ctx, &next); err != nil {
		return nil, err
	}
	if err := s.checkBudget(ctx, &next, existing.ID); err != nil {
		return nil, err
	}

	// Reverse-then-reapply, netted per account so unchanged legs cancel.
	legs := netLegs(reversedLegs(cascadeLegs(existing)), cascadeLegs(&next))
	if err := s.checkLegs(ctx, legs); err != nil {
		return nil, err
	}
	if err := s.applyLegs(ctx, legs); err != nil {
		return nil, err
	}

	persisted, err := s.storage.Transactions.Update(ctx, id, fullPatch(&next))
	if err != nil || persisted == nil {
		s.undoLegs(ctx, legs)
		if err != nil {
			return nil, err
		}
		return nil, apperr.NotFound("transaction not found", map[string]string{"id": id.String()})
	}
	return persisted, nil
}

// DeleteTransaction reverses the transaction's balance effects and
// removes the record.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.mutator.Process(ctx, operator.ActionFunc(func(ctx context.Context) error {
		return s.deleteTransaction(ctx, id)
	}))
}

func (s *TransactionService) deleteTransaction(ctx context.Context, id uuid.UUID) error {
	existing, err := s.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	reversal := netLegs(reversedLegs(cascadeLegs(existing)))
	if err := s.checkLegs(ctx, reversal); err != nil {
		return err
	}
	if err := s.applyLegs(ctx, reversal); err != nil {
		return err
	}

	deleted, err := s.storage.Transactions.Delete(ctx, id)
	if err != nil || !deleted {
		s.undoLegs(ctx, reversal)
		if err != nil {
			return err
		}
		return apperr.NotFound("transaction not found", map[string]string{"id": id.String()})
	}
	return nil
}

// validateTransaction checks referential integrity and the category/type
// and transfer rules on a fully materialized transaction state.
func (s *TransactionService) validateTransaction(ctx context.Context, record *transaction.Transaction) error {
	if !record.Amount.IsPositive() {
		return apperr.Validation("transaction amount must be positive", map[string]string{"amount": record.Amount.String()})
	}
	if !record.Type.IsValid() {
		return apperr.Validation("invalid transaction type", map[string]string{"transactionType": string(record.Type)})
	}
	if err := ensureUserExists(ctx, s.storage, record.UserID); err != nil {
		return err
	}

	acct, err := s.storage.Accounts.FindByID(ctx, record.AccountID)
	if err != nil {
		return err
	}
	if acct == nil {
		return apperr.NotFound("account not found", map[string]string{"accountId": record.AccountID.String()})
	}

	cat, err := s.storage.Categories.FindByID(ctx, record.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperr.NotFound("category not found", map[string]string{"categoryId": record.CategoryID.String()})
	}

	switch record.Type {
	case transaction.TransactionTypeIncome, transaction.TransactionTypeExpense:
		if !categoryMatches(cat.Type, record.Type) {
			return apperr.Validation("category type does not match transaction type", map[string]string{
				"categoryType":    string(cat.Type),
				"transactionType": string(record.Type),
			})
		}
		if record.TransferAccountID != uuid.Nil {
			return apperr.Validation("transfer account only allowed for transfers", map[string]string{
				"transactionType":   string(record.Type),
				"transferAccountId": record.TransferAccountID.String(),
			})
		}
	case transaction.TransactionTypeTransfer:
		if record.TransferAccountID == uuid.Nil {
			return apperr.Validation("transfer account is required", map[string]string{
				"transactionType": string(record.Type),
			})
		}
		if record.TransferAccountID == record.AccountID {
			return apperr.Validation("transfer account must differ from source account", map[string]string{
				"accountId": record.AccountID.String(),
			})
		}
		target, err := s.storage.Accounts.FindByID(ctx, record.TransferAccountID)
		if err != nil {
			return err
		}
		if target == nil {
			return apperr.NotFound("transfer account not found", map[string]string{
				"transferAccountId": record.TransferAccountID.String(),
			})
		}
	}
	return nil
}

func categoryMatches(categoryType category.CategoryType, txType transaction.TransactionType) bool {
	switch txType {
	case transaction.TransactionTypeIncome:
		return categoryType == category.CategoryTypeIncome
	case transaction.TransactionTypeExpense:
		return categoryType == category.CategoryTypeExpense
	}
	return true
}

func (s *TransactionService) checkBudget(ctx context.Context, record *transaction.Transaction, excludeID uuid.UUID) error {
	if record.Type != transaction.TransactionTypeExpense {
		return nil
	}
	return s.budgets.EnsureExpenseWithinBudget(ctx, record.UserID, record.CategoryID, record.OccurredAt, record.Amount, excludeID)
}

// checkLegs projects each netted leg onto its account before anything is
// written, so a doomed cascade fails with no write at all.
func (s *TransactionService) checkLegs(ctx context.Context, legs []balanceLeg) error {
	for _, leg := range legs {
		acct, err := s.accounts.GetAccount(ctx, leg.accountID)
		if err != nil {
			return err
		}
		projected := round2(acct.Balance.Add(leg.delta))
		if projected.LessThan(acct.MinimumBalance) {
			return apperr.Validation("balance below minimum balance", map[string]string{
				"accountId":      leg.accountID.String(),
				"newBalance":     projected.String(),
				"minimumBalance": acct.MinimumBalance.String(),
			})
		}
	}
	return nil
}

// applyLegs adjusts each leg in order; on failure it undoes the legs
// already applied before returning the error.
func (s *TransactionService) applyLegs(ctx context.Context, legs []balanceLeg) error {
	for i, leg := range legs {
		if _, err := s.accounts.AdjustBalance(ctx, leg.accountID, leg.delta); err != nil {
			s.undoLegs(ctx, legs[:i])
			return err
		}
	}
	return nil
}

// undoLegs compensates adjustments that already succeeded.
func (s *TransactionService) undoLegs(ctx context.Context, applied []balanceLeg) {
	for _, leg := range reversedLegs(applied) {
		_, _ = s.accounts.AdjustBalance(ctx, leg.accountID, leg.delta)
	}
}

func fullPatch(record *transaction.Transaction) *transaction.TransactionPatch {
	return &transaction.TransactionPatch{
		AccountID:         omit.From(record.AccountID),
		CategoryID:        omit.From(record.CategoryID),
		TransferAccountID: omit.From(record.TransferAccountID),
		Amount:            omit.From(record.Amount),
		Type:              omit.From(record.Type),
		OccurredAt:        omit.From(record.OccurredAt),
		Description:       omit.From(record.Description),
		UpdatedAt:         omit.From(record.UpdatedAt),
	}
}
