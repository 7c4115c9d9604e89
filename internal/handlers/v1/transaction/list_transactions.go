package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	UserID     string `query:"userId" doc:"Filter by owning user UUID"`
	AccountID  string `query:"accountId" doc:"Filter by account UUID"`
	CategoryID string `query:"categoryId" doc:"Filter by category UUID"`
	Type       string `query:"type" doc:"Filter by transaction type"`
	From       string `query:"from" doc:"Inclusive RFC 3339 lower bound on occurredAt"`
	To         string `query:"to" doc:"Exclusive RFC 3339 upper bound on occurredAt"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Matching transactions"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, filter service.TransactionsFilter) ([]*transaction.Transaction, error)
}

// ListTransactionsHandler handles GET /v1/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/transactions",
		Summary:     "List transactions",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseListTransactionsInput(input *ListTransactionsInput) (service.TransactionsFilter, error) {
	userID, err := parse.OptionalUUID("userId", input.UserID)
	if err != nil {
		return service.TransactionsFilter{}, err
	}
	accountID, err := parse.OptionalUUID("accountId", input.AccountID)
	if err != nil {
		return service.TransactionsFilter{}, err
	}
	categoryID, err := parse.OptionalUUID("categoryId", input.CategoryID)
	if err != nil {
		return service.TransactionsFilter{}, err
	}
	from, err := parse.OptionalTime("from", input.From)
	if err != nil {
		return service.TransactionsFilter{}, err
	}
	to, err := parse.OptionalTime("to", input.To)
	if err != nil {
		return service.TransactionsFilter{}, err
	}

	return service.TransactionsFilter{
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Type:       transaction.TransactionType(input.Type),
		From:       from,
		To:         to,
	}, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	filter, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	records, err := h.TransactionService.ListTransactions(ctx, filter)
	if err != nil {
		return nil, respond.Error(err, "failed to list transactions")
	}

	if logData != nil {
		logData.AddData("transactionCount", len(records))
	}

	resp := ListTransactionsResponseBody{Transactions: make([]Transaction, len(records))}
	for i, record := range records {
		resp.Transactions[i] = fromRecord(record)
	}
	return &ListTransactionsOutput{Body: resp}, nil
}
