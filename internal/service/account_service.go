package service

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

// AccountService handles account business logic, including the balance
// mutation primitives used by transaction cascades.
type AccountService struct {
	storage *storage.Storage
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage) *AccountService {
	return &AccountService{storage: store}
}

// CreateAccount opens an account for an existing user. The starting
// balance must not be below the minimum balance.
func (s *AccountService) CreateAccount(ctx context.Context, create AccountCreate) (*account.Account, error) {
	if err := ensureUserExists(ctx, s.storage, create.UserID); err != nil {
		return nil, err
	}

	minimum := round2(create.MinimumBalance)
	starting := round2(create.StartingBalance)
	if starting.LessThan(minimum) {
		return nil, apperr.Validation("starting balance below minimum balance", map[string]string{
			"startingBalance": starting.String(),
			"minimumBalance":  minimum.String(),
		})
	}

	now := time.Now().UTC()
	record := &account.Account{
		ID:             newID(),
		UserID:         create.UserID,
		Name:           create.Name,
		Type:           create.Type,
		Currency:       create.Currency,
		Description:    create.Description,
		MinimumBalance: minimum,
		Balance:        starting,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.storage.Accounts.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetAccount retrieves an account by ID.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	record, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.NotFound("account not found", map[string]string{"id": id.String()})
	}
	return record, nil
}

// ListAccounts returns accounts matching the non-empty filter fields.
func (s *AccountService) ListAccounts(ctx context.Context, filter AccountsFilter) ([]*account.Account, error) {
	storageFilter := &account.AccountFilter{
		UserID:   filter.UserID,
		Type:     filter.Type,
		Currency: filter.Currency,
		Name:     filter.Name,
	}
	return s.storage.Accounts.List(ctx, storageFilter)
}

// UpdateAccount applies a partial update. Lowering requirements is free,
// but a new minimum balance must not exceed the current balance.
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, update AccountUpdate) (*account.Account, error) {
	if update.isEmpty() {
		return nil, apperr.Validation("update payload is empty", map[string]string{"id": id.String()})
	}

	patch := &account.AccountPatch{
		Name:        update.Name,
		Type:        update.Type,
		Currency:    update.Currency,
		Description: update.Description,
		UpdatedAt:   omit.From(time.Now().UTC()),
	}

	if newMinimum, ok := update.MinimumBalance.Get(); ok {
		newMinimum = round2(newMinimum)
		current, err := s.GetAccount(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Balance.LessThan(newMinimum) {
			return nil, apperr.Validation("balance below new minimum balance", map[string]string{
				"balance":        current.Balance.String(),
				"minimumBalance": newMinimum.String(),
			})
		}
		patch.MinimumBalance = omit.From(newMinimum)
	}

	updated, err := s.storage.Accounts.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("account not found", map[string]string{"id": id.String()})
	}
	return updated, nil
}

// DeleteAccount removes an account that no transaction references.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	referenced, err := s.storage.Transactions.ExistsForAccount(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return apperr.Validation("account has transactions", map[string]string{"id": id.String()})
	}

	deleted, err := s.storage.Accounts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("account not found", map[string]string{"id": id.String()})
	}
	return nil
}

// AdjustBalance applies a signed delta to the account balance.
func (s *AccountService) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*account.Account, error) {
	current, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.writeBalance(ctx, current, round2(current.Balance.Add(delta)))
}

// SetBalance overwrites the account balance with an absolute value.
func (s *AccountService) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) (*account.Account, error) {
	current, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.writeBalance(ctx, current, round2(balance))
}

func (s *AccountService) writeBalance(ctx context.Context, current *account.Account, newBalance decimal.Decimal) (*account.Account, error) {
	if newBalance.LessThan(current.MinimumBalance) {
		return nil, apperr.Validation("balance below minimum balance", map[string]string{
			"newBalance":     newBalance.String(),
			"minimumBalance": current.MinimumBalance.String(),
		})
	}

	patch := &account.AccountPatch{
		Balance:   omit.From(newBalance),
		UpdatedAt: omit.From(time.Now().UTC()),
	}
	updated, err := s.storage.Accounts.Update(ctx, current.ID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("account not found", map[string]string{"id": current.ID.String()})
	}
	return updated, nil
}
