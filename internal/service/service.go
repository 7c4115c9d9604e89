package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	User        *UserService
	Account     *AccountService
	Category    *CategoryService
	Budget      *BudgetService
	Transaction *TransactionService
}

// NewService creates a new Service with the given storage. The mutator
// serializes transaction cascades; it must be started by the caller.
func NewService(store *storage.Storage, mutator *operator.OperatorDelegator) *Service {
	accountSvc := NewAccountService(store)
	budgetSvc := NewBudgetService(store)
	return &Service{
		User:        NewUserService(store),
		Account:     accountSvc,
		Category:    NewCategoryService(store),
		Budget:      budgetSvc,
		Transaction: NewTransactionService(store, accountSvc, budgetSvc, mutator),
	}
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// round2 normalizes a decimal to 2 fraction digits, rounding halves
// toward positive infinity (-0.005 becomes 0.00, not -0.01).
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(decimal.New(5, -1)).Floor().Shift(-2)
}

func ensureUserExists(ctx context.Context, store *storage.Storage, userID uuid.UUID) error {
	record, err := store.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if record == nil {
		return apperr.NotFound("user not found", map[string]string{"userId": userID.String()})
	}
	return nil
}
