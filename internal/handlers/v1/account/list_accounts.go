package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

// ListAccountsInput is the Huma input for listing accounts.
type ListAccountsInput struct {
	UserID   string `query:"userId" doc:"Filter by owning user UUID"`
	Type     string `query:"type" doc:"Filter by account type"`
	Currency string `query:"currency" doc:"Filter by currency code"`
	Name     string `query:"name" doc:"Case-insensitive substring match on name"`
}

// ListAccountsResponseBody is the response body for listing accounts.
type ListAccountsResponseBody struct {
	Accounts []Account `json:"accounts" doc:"Matching accounts"`
}

// ListAccountsOutput is the Huma output for listing accounts.
type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

// accountLister is the interface for listing accounts.
type accountLister interface {
	ListAccounts(ctx context.Context, filter service.AccountsFilter) ([]*account.Account, error)
}

// ListAccountsHandler handles GET /v1/accounts.
type ListAccountsHandler struct {
	AccountService accountLister
}

// NewListAccountsHandler creates a new ListAccountsHandler.
func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

// Register registers the list accounts endpoint with the Huma API.
func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, input *ListAccountsInput) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := parse.OptionalUUID("userId", input.UserID)
	if err != nil {
		return nil, err
	}

	records, err := h.AccountService.ListAccounts(ctx, service.AccountsFilter{
		UserID:   userID,
		Type:     account.AccountType(input.Type),
		Currency: input.Currency,
		Name:     input.Name,
	})
	if err != nil {
		return nil, respond.Error(err, "failed to list accounts")
	}

	if logData != nil {
		logData.AddData("accountCount", len(records))
	}

	resp := ListAccountsResponseBody{Accounts: make([]Account, len(records))}
	for i, record := range records {
		resp.Accounts[i] = fromRecord(record)
	}
	return &ListAccountsOutput{Body: resp}, nil
}
