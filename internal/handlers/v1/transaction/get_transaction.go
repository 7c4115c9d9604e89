package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// GetTransactionInput is the Huma input for fetching a transaction.
type GetTransactionInput struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

// GetTransactionOutput is the response for fetching a transaction.
type GetTransactionOutput struct {
	Body Transaction
}

// transactionGetter is the interface for fetching transactions.
type transactionGetter interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
}

// GetTransactionHandler handles GET /v1/transaction/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

// NewGetTransactionHandler creates a new GetTransactionHandler.
func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

// Register registers the get transaction endpoint with the Huma API.
func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/{id}",
		Summary:     "Get a transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	record, err := h.TransactionService.GetTransaction(ctx, id)
	if err != nil {
		return nil, respond.Error(err, "failed to get transaction")
	}

	return &GetTransactionOutput{Body: fromRecord(record)}, nil
}
