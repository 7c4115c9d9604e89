package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction UUID"`
	Body UpdateTransactionBody
}

// UpdateTransactionBody is the request body for updating a transaction.
// Absent fields keep their stored values; the patched state is then
// validated and cascaded exactly like a creation.
type UpdateTransactionBody struct {
	AccountID         *string `json:"accountId,omitempty" doc:"Account UUID"`
	CategoryID        *string `json:"categoryId,omitempty" doc:"Category UUID"`
	TransferAccountID *string `json:"transferAccountId,omitempty" doc:"Credited account UUID for transfers"`
	Amount            *string `json:"amount,omitempty" doc:"Positive decimal amount"`
	Type              *string `json:"type,omitempty" enum:"INCOME,EXPENSE,TRANSFER" doc:"Transaction type"`
	OccurredAt        *string `json:"occurredAt,omitempty" doc:"RFC 3339 time the transaction occurred"`
	Description       *string `json:"description,omitempty" doc:"Free-form description"`
}

// UpdateTransactionOutput is the response for updating a transaction.
type UpdateTransactionOutput struct {
	Body Transaction
}

// transactionUpdater is the interface for updating transactions.
type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id uuid.UUID, update service.TransactionUpdate) (*transaction.Transaction, error)
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update a transaction",
		Description: "Reverses the stored balance effects, re-validates the patched transaction, and applies the new effects.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (uuid.UUID, service.TransactionUpdate, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return uuid.Nil, service.TransactionUpdate{}, err
	}

	update := service.TransactionUpdate{}
	if input.Body.AccountID != nil {
		accountID, err := parse.UUID("accountId", *input.Body.AccountID)
		if err != nil {
			return uuid.Nil, service.TransactionUpdate{}, err
		}
		update.AccountID = omit.From(accountID)
	}
	if input.Body.CategoryID != nil {
		categoryID, err := parse.UUID("categoryId", *input.Body.CategoryID)
		if err != nil {
			return uuid.Nil, service.TransactionUpdate{}, err
		}
		update.CategoryID = omit.From(categoryID)
	}
	if input.Body.TransferAccountID != nil {
		transferAccountID := uuid.Nil
		if *input.Body.TransferAccountID != "" {
			transferAccountID, err = parse.UUID("transferAccountId", *input.Body.TransferAccountID)
			if err != nil {
				return uuid.Nil, service.TransactionUpdate{}, err
			}
		}
		update.TransferAccountID = omit.From(transferAccountID)
	}
	if input.Body.Amount != nil {
		amount, err := parse.Amount("amount", *input.Body.Amount)
		if err != nil {
			return uuid.Nil, service.TransactionUpdate{}, err
		}
		update.Amount = omit.From(amount)
	}
	if input.Body.Type != nil {
		update.Type = omit.From(transaction.TransactionType(*input.Body.Type))
	}
	if input.Body.OccurredAt != nil {
		occurredAt, err := parse.Time("occurredAt", *input.Body.OccurredAt)
		if err != nil {
			return uuid.Nil, service.TransactionUpdate{}, err
		}
		update.OccurredAt = omit.From(occurredAt)
	}
	if input.Body.Description != nil {
		update.Description = omit.From(*input.Body.Description)
	}
	return id, update, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	id, update, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	updated, err := h.TransactionService.UpdateTransaction(ctx, id, update)
	if err != nil {
		return nil, respond.Error(err, "failed to update transaction")
	}

	return &UpdateTransactionOutput{Body: fromRecord(updated)}, nil
}
