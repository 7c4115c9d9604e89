package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
)

// DeleteAccountInput is the Huma input for deleting an account.
type DeleteAccountInput struct {
	ID string `path:"id" doc:"Account UUID"`
}

// DeleteAccountOutput is the response for deleting an account.
type DeleteAccountOutput struct {
	Status int
}

// accountDeleter is the interface for deleting accounts.
type accountDeleter interface {
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// DeleteAccountHandler handles DELETE /v1/account/{id}.
type DeleteAccountHandler struct {
	AccountService accountDeleter
}

// NewDeleteAccountHandler creates a new DeleteAccountHandler.
func NewDeleteAccountHandler(svc accountDeleter) *DeleteAccountHandler {
	return &DeleteAccountHandler{AccountService: svc}
}

// Register registers the delete account endpoint with the Huma API.
func (h *DeleteAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-account",
		Method:      http.MethodDelete,
		Path:        "/v1/account/{id}",
		Summary:     "Delete an account",
		Description: "Removes an account that no transaction references.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *DeleteAccountHandler) handle(ctx context.Context, input *DeleteAccountInput) (*DeleteAccountOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.AccountService.DeleteAccount(ctx, id); err != nil {
		return nil, respond.Error(err, "failed to delete account")
	}

	return &DeleteAccountOutput{Status: http.StatusNoContent}, nil
}
