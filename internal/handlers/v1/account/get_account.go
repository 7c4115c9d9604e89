package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

// GetAccountInput is the Huma input for fetching an account.
type GetAccountInput struct {
	ID string `path:"id" doc:"Account UUID"`
}

// GetAccountOutput is the response for fetching an account.
type GetAccountOutput struct {
	Body Account
}

// accountGetter is the interface for fetching accounts.
type accountGetter interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
}

// GetAccountHandler handles GET /v1/account/{id}.
type GetAccountHandler struct {
	AccountService accountGetter
}

// NewGetAccountHandler creates a new GetAccountHandler.
func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

// Register registers the get account endpoint with the Huma API.
func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	record, err := h.AccountService.GetAccount(ctx, id)
	if err != nil {
		return nil, respond.Error(err, "failed to get account")
	}

	return &GetAccountOutput{Body: fromRecord(record)}, nil
}
