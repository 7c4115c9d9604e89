package service

import (
	"context"
	"strconv"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// BudgetService handles budget business logic and answers the
// budget-ceiling question for expense transactions.
type BudgetService struct {
	storage *storage.Storage
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(store *storage.Storage) *BudgetService {
	return &BudgetService{storage: store}
}

// CreateBudget creates a budget. The category must be an expense category
// and at most one budget may exist per (user, category, year, month).
func (s *BudgetService) CreateBudget(ctx context.Context, create BudgetCreate) (*budget.Budget, error) {
	if create.Month < time.January || create.Month > time.December {
		return nil, apperr.Validation("month out of range", map[string]string{"month": strconv.Itoa(int(create.Month))})
	}

	cat, err := s.storage.Categories.FindByID(ctx, create.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category not found", map[string]string{"categoryId": create.CategoryID.String()})
	}
	if cat.Type != category.CategoryTypeExpense {
		return nil, apperr.Validation("budget category must be an expense category", map[string]string{
			"categoryId":   create.CategoryID.String(),
			"categoryType": string(cat.Type),
		})
	}

	existing, err := s.storage.Budgets.FindByPeriod(ctx, create.UserID, create.CategoryID, create.Year, create.Month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("budget already exists for period", map[string]string{
			"categoryId": create.CategoryID.String(),
			"year":       strconv.Itoa(create.Year),
			"month":      strconv.Itoa(int(create.Month)),
		})
	}

	now := time.Now().UTC()
	record := &budget.Budget{
		ID:              newID(),
		UserID:          create.UserID,
		CategoryID:      create.CategoryID,
		Year:            create.Year,
		Month:           create.Month,
		Amount:          round2(create.Amount),
		AlertPercentage: create.AlertPercentage,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.storage.Budgets.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetBudget retrieves a budget by ID.
func (s *BudgetService) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	record, err := s.storage.Budgets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.NotFound("budget not found", map[string]string{"id": id.String()})
	}
	return record, nil
}

// ListBudgets returns budgets matching the non-empty filter fields.
func (s *BudgetService) ListBudgets(ctx context.Context, filter BudgetsFilter) ([]*budget.Budget, error) {
	storageFilter := &budget.BudgetFilter{
		UserID:     filter.UserID,
		CategoryID: filter.CategoryID,
		Year:       filter.Year,
		Month:      filter.Month,
	}
	return s.storage.Budgets.List(ctx, storageFilter)
}

// UpdateBudget applies a partial update to amount and alert percentage.
func (s *BudgetService) UpdateBudget(ctx context.Context, id uuid.UUID, update BudgetUpdate) (*budget.Budget, error) {
	if update.isEmpty() {
		return nil, apperr.Validation("update payload is empty", map[string]string{"id": id.String()})
	}

	patch := &budget.BudgetPatch{
		AlertPercentage: update.AlertPercentage,
		UpdatedAt:       omit.From(time.Now().UTC()),
	}
	if amount, ok := update.Amount.Get(); ok {
		patch.Amount = omit.From(round2(amount))
	}

	updated, err := s.storage.Budgets.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("budget not found", map[string]string{"id": id.String()})
	}
	return updated, nil
}

// DeleteBudget removes a budget whose period holds no transactions in the
// budgeted category.
func (s *BudgetService) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	record, err := s.GetBudget(ctx, id)
	if err != nil {
		return err
	}

	exists, err := s.storage.Transactions.ExistsForCategoryPeriod(ctx, record.CategoryID, record.Year, record.Month)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Validation("transactions exist in budget period", map[string]string{
			"categoryId": record.CategoryID.String(),
			"year":       strconv.Itoa(record.Year),
			"month":      strconv.Itoa(int(record.Month)),
		})
	}

	deleted, err := s.storage.Budgets.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("budget not found", map[string]string{"id": id.String()})
	}
	return nil
}

// EnsureExpenseWithinBudget checks a prospective expense amount against
// the budget covering the category and the period of occurredAt. Without
// a budget for that period the check passes. A non-nil excludeID leaves
// that transaction out of the current period spend, so updates do not
// count their own previous amount.
func (s *BudgetService) EnsureExpenseWithinBudget(ctx context.Context, userID, categoryID uuid.UUID, occurredAt time.Time, amount decimal.Decimal, excludeID uuid.UUID) error {
	utc := occurredAt.UTC()
	year, month := utc.Year(), utc.Month()

	record, err := s.storage.Budgets.FindByPeriod(ctx, userID, categoryID, year, month)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	spent, err := s.storage.Transactions.SumForCategoryPeriod(ctx, categoryID, year, month, transaction.TransactionTypeExpense, excludeID)
	if err != nil {
		return err
	}

	projected := round2(spent.Add(amount))
	if projected.GreaterThan(record.Amount) {
		return apperr.Validation("budget ceiling exceeded", map[string]string{
			"budgetAmount":   record.Amount.String(),
			"projectedSpend": projected.String(),
		})
	}
	return nil
}
