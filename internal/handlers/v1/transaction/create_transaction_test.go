package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// mockTransactionService is a mock for transactionCreator.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, create service.TransactionCreate) (*transaction.Transaction, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

// newTestAPI registers the handler against a humatest API and returns it.
func newTestAPI(t *testing.T, svc transactionCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(svc).Register(api)
	return api
}

// -- parseCreateTransactionInput unit tests --
// These verify individual parsed field values which the HTTP tests don't assert.

func TestParseCreateTransactionInput_ValidInput(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())

	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			UserID:      userID.String(),
			AccountID:   accountID.String(),
			CategoryID:  categoryID.String(),
			Amount:      "123.45",
			Type:        "EXPENSE",
			OccurredAt:  "2026-01-15T10:30:00Z",
			Description: "Groceries",
		},
	}

	create, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.Equal(t, userID, create.UserID)
	assert.Equal(t, accountID, create.AccountID)
	assert.Equal(t, categoryID, create.CategoryID)
	assert.Equal(t, uuid.Nil, create.TransferAccountID)
	assert.True(t, create.Amount.Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, transaction.TransactionTypeExpense, create.Type)
	expectedDate, _ := time.Parse(time.RFC3339, "2026-01-15T10:30:00Z")
	assert.True(t, create.OccurredAt.Equal(expectedDate))
	assert.Equal(t, "Groceries", create.Description)
}

func TestParseCreateTransactionInput_DefaultsOccurredAt(t *testing.T) {
	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			UserID:     uuid.Must(uuid.NewV4()).String(),
			AccountID:  uuid.Must(uuid.NewV4()).String(),
			CategoryID: uuid.Must(uuid.NewV4()).String(),
			Amount:     "10",
			Type:       "INCOME",
		},
	}

	before := time.Now().UTC()
	create, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.False(t, create.OccurredAt.Before(before))
}

func TestParseCreateTransactionInput_BadAmount(t *testing.T) {
	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			UserID:     uuid.Must(uuid.NewV4()).String(),
			AccountID:  uuid.Must(uuid.NewV4()).String(),
			CategoryID: uuid.Must(uuid.NewV4()).String(),
			Amount:     "not-a-number",
			Type:       "EXPENSE",
		},
	}

	_, err := parseCreateTransactionInput(input)
	assert.Error(t, err)
}

func TestParseCreateTransactionInput_BadUUID(t *testing.T) {
	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			UserID:     "nope",
			AccountID:  uuid.Must(uuid.NewV4()).String(),
			CategoryID: uuid.Must(uuid.NewV4()).String(),
			Amount:     "10",
			Type:       "EXPENSE",
		},
	}

	_, err := parseCreateTransactionInput(input)
	assert.Error(t, err)
}

// -- HTTP integration tests (full Huma stack via humatest) --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())
	now := time.Now().UTC().Truncate(time.Second)

	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(create service.TransactionCreate) bool {
		return create.AccountID == accountID &&
			create.CategoryID == categoryID &&
			create.Amount.Equal(decimal.RequireFromString("42.50")) &&
			create.Type == transaction.TransactionTypeExpense
	})).Return(&transaction.Transaction{
		ID:         txID,
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString("42.50"),
		Type:       transaction.TransactionTypeExpense,
		OccurredAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil)

	api := newTestAPI(t, mockSvc)
	resp := api.Post("/v1/transaction", map[string]any{
		"userId":     userID.String(),
		"accountId":  accountID.String(),
		"categoryId": categoryID.String(),
		"amount":     "42.50",
		"type":       "EXPENSE",
		"occurredAt": now.Format(time.RFC3339),
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body Transaction
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, txID.String(), body.ID)
	assert.Equal(t, "42.5", body.Amount)
	assert.Equal(t, "EXPENSE", body.Type)
	assert.Empty(t, body.TransferAccountID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_ValidationErrorIs400(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, apperr.Validation("balance below minimum balance", nil))

	api := newTestAPI(t, mockSvc)
	resp := api.Post("/v1/transaction", map[string]any{
		"userId":     uuid.Must(uuid.NewV4()).String(),
		"accountId":  uuid.Must(uuid.NewV4()).String(),
		"categoryId": uuid.Must(uuid.NewV4()).String(),
		"amount":     "450",
		"type":       "EXPENSE",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_CreateTransaction_NotFoundIs404(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, apperr.NotFound("account not found", nil))

	api := newTestAPI(t, mockSvc)
	resp := api.Post("/v1/transaction", map[string]any{
		"userId":     uuid.Must(uuid.NewV4()).String(),
		"accountId":  uuid.Must(uuid.NewV4()).String(),
		"categoryId": uuid.Must(uuid.NewV4()).String(),
		"amount":     "10",
		"type":       "EXPENSE",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_CreateTransaction_InternalErrorIs500(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	api := newTestAPI(t, mockSvc)
	resp := api.Post("/v1/transaction", map[string]any{
		"userId":     uuid.Must(uuid.NewV4()).String(),
		"accountId":  uuid.Must(uuid.NewV4()).String(),
		"categoryId": uuid.Must(uuid.NewV4()).String(),
		"amount":     "10",
		"type":       "EXPENSE",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
