// Package account exposes the account CRUD endpoints.
package account

import (
	"time"

	"github.com/carson-networks/finance-server/internal/storage/account"
)

// Account is the API response model for an account.
type Account struct {
	ID             string `json:"id" doc:"Account UUID"`
	UserID         string `json:"userId" doc:"Owning user UUID"`
	Name           string `json:"name" doc:"Account name"`
	Type           string `json:"type" doc:"Account type: CHECKING, SAVINGS, CASH, CREDIT_CARD, INVESTMENT"`
	Currency       string `json:"currency,omitempty" doc:"Currency code"`
	Description    string `json:"description,omitempty" doc:"Free-form description"`
	MinimumBalance string `json:"minimumBalance" doc:"Decimal floor the balance may not go below"`
	Balance        string `json:"balance" doc:"Decimal current balance"`
	CreatedAt      string `json:"createdAt" doc:"RFC 3339 creation time"`
	UpdatedAt      string `json:"updatedAt" doc:"RFC 3339 last update time"`
}

func fromRecord(record *account.Account) Account {
	return Account{
		ID:             record.ID.String(),
		UserID:         record.UserID.String(),
		Name:           record.Name,
		Type:           string(record.Type),
		Currency:       record.Currency,
		Description:    record.Description,
		MinimumBalance: record.MinimumBalance.String(),
		Balance:        record.Balance.String(),
		CreatedAt:      record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      record.UpdatedAt.Format(time.RFC3339),
	}
}
