package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	UserID            string `json:"userId" doc:"Owning user UUID"`
	AccountID         string `json:"accountId" doc:"Account UUID the transaction applies to"`
	CategoryID        string `json:"categoryId" doc:"Category UUID; its type must match for income and expense"`
	TransferAccountID string `json:"transferAccountId,omitempty" doc:"Credited account UUID, required for transfers"`
	Amount            string `json:"amount" doc:"Positive decimal amount (e.g. '42.50')"`
	Type              string `json:"type" enum:"INCOME,EXPENSE,TRANSFER" doc:"Transaction type"`
	OccurredAt        string `json:"occurredAt,omitempty" doc:"RFC 3339 time the transaction occurred, defaults to now"`
	Description       string `json:"description,omitempty" doc:"Free-form description"`
}

// CreateTransactionOutput is the response for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, create service.TransactionCreate) (*transaction.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create a transaction",
		Description: "Records a transaction and applies its balance effects. Fails without any write when a balance floor or budget ceiling would be breached.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionCreate, error) {
	userID, err := parse.UUID("userId", input.Body.UserID)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	accountID, err := parse.UUID("accountId", input.Body.AccountID)
	if err != nil {
		return service.TransactionCreate{}, err
	}
	categoryID, err := parse.UUID("categoryId", input.Body.CategoryID)
	if err != nil {
		return service.TransactionCreate{}, err
	}

	transferAccountID := uuid.Nil
	if input.Body.TransferAccountID != "" {
		transferAccountID, err = parse.UUID("transferAccountId", input.Body.TransferAccountID)
		if err != nil {
			return service.TransactionCreate{}, err
		}
	}

	amount, err := parse.Amount("amount", input.Body.Amount)
	if err != nil {
		return service.TransactionCreate{}, err
	}

	occurredAt := time.Now().UTC()
	if input.Body.OccurredAt != "" {
		occurredAt, err = parse.Time("occurredAt", input.Body.OccurredAt)
		if err != nil {
			return service.TransactionCreate{}, err
		}
	}

	return service.TransactionCreate{
		UserID:            userID,
		AccountID:         accountID,
		CategoryID:        categoryID,
		TransferAccountID: transferAccountID,
		Amount:            amount,
		Type:              transaction.TransactionType(input.Body.Type),
		OccurredAt:        occurredAt,
		Description:       input.Body.Description,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	created, err := h.TransactionService.CreateTransaction(ctx, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", created.ID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   fromRecord(created),
	}, nil
}
