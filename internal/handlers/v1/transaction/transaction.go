// Package transaction exposes the transaction CRUD endpoints. Creating,
// updating, and deleting a transaction also moves the affected account
// balances through the service layer's cascade.
package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID                string `json:"id" doc:"Transaction UUID"`
	UserID            string `json:"userId" doc:"Owning user UUID"`
	AccountID         string `json:"accountId" doc:"Debited or credited account UUID"`
	CategoryID        string `json:"categoryId" doc:"Category UUID"`
	TransferAccountID string `json:"transferAccountId,omitempty" doc:"Credited account UUID, only for transfers"`
	Amount            string `json:"amount" doc:"Positive decimal amount; the type decides the direction"`
	Type              string `json:"type" doc:"Transaction type: INCOME, EXPENSE, or TRANSFER"`
	OccurredAt        string `json:"occurredAt" doc:"RFC 3339 time the transaction occurred"`
	Description       string `json:"description,omitempty" doc:"Free-form description"`
	CreatedAt         string `json:"createdAt" doc:"RFC 3339 creation time"`
	UpdatedAt         string `json:"updatedAt" doc:"RFC 3339 last update time"`
}

func fromRecord(record *transaction.Transaction) Transaction {
	out := Transaction{
		ID:          record.ID.String(),
		UserID:      record.UserID.String(),
		AccountID:   record.AccountID.String(),
		CategoryID:  record.CategoryID.String(),
		Amount:      record.Amount.String(),
		Type:        string(record.Type),
		OccurredAt:  record.OccurredAt.Format(time.RFC3339),
		Description: record.Description,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   record.UpdatedAt.Format(time.RFC3339),
	}
	if record.TransferAccountID != uuid.Nil {
		out.TransferAccountID = record.TransferAccountID.String()
	}
	return out
}
