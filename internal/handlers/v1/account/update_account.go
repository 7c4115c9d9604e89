package account

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

// UpdateAccountInput is the Huma input for updating an account.
type UpdateAccountInput struct {
	ID   string `path:"id" doc:"Account UUID"`
	Body UpdateAccountBody
}

// UpdateAccountBody is the request body for updating an account. Absent
// fields keep their stored values. The balance is not updatable here; it
// only moves through transactions.
type UpdateAccountBody struct {
	Name           *string `json:"name,omitempty" minLength:"1" doc:"Account name"`
	Type           *string `json:"type,omitempty" enum:"CHECKING,SAVINGS,CASH,CREDIT_CARD,INVESTMENT" doc:"Account type"`
	Currency       *string `json:"currency,omitempty" doc:"Currency code"`
	Description    *string `json:"description,omitempty" doc:"Free-form description"`
	MinimumBalance *string `json:"minimumBalance,omitempty" doc:"Decimal floor; must not exceed the current balance"`
}

// UpdateAccountOutput is the response for updating an account.
type UpdateAccountOutput struct {
	Body Account
}

// accountUpdater is the interface for updating accounts.
type accountUpdater interface {
	UpdateAccount(ctx context.Context, id uuid.UUID, update service.AccountUpdate) (*account.Account, error)
}

// UpdateAccountHandler handles PATCH /v1/account/{id}.
type UpdateAccountHandler struct {
	AccountService accountUpdater
}

// NewUpdateAccountHandler creates a new UpdateAccountHandler.
func NewUpdateAccountHandler(svc accountUpdater) *UpdateAccountHandler {
	return &UpdateAccountHandler{AccountService: svc}
}

// Register registers the update account endpoint with the Huma API.
func (h *UpdateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPatch,
		Path:        "/v1/account/{id}",
		Summary:     "Update an account",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseUpdateAccountInput(input *UpdateAccountInput) (uuid.UUID, service.AccountUpdate, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return uuid.Nil, service.AccountUpdate{}, err
	}

	update := service.AccountUpdate{}
	if input.Body.Name != nil {
		update.Name = omit.From(*input.Body.Name)
	}
	if input.Body.Type != nil {
		accountType := account.AccountType(*input.Body.Type)
		if !accountType.IsValid() {
			return uuid.Nil, service.AccountUpdate{}, huma.NewError(http.StatusBadRequest, "invalid type", nil)
		}
		update.Type = omit.From(accountType)
	}
	if input.Body.Currency != nil {
		update.Currency = omit.From(*input.Body.Currency)
	}
	if input.Body.Description != nil {
		update.Description = omit.From(*input.Body.Description)
	}
	if input.Body.MinimumBalance != nil {
		minimum, err := parse.Amount("minimumBalance", *input.Body.MinimumBalance)
		if err != nil {
			return uuid.Nil, service.AccountUpdate{}, err
		}
		update.MinimumBalance = omit.From(minimum)
	}
	return id, update, nil
}

func (h *UpdateAccountHandler) handle(ctx context.Context, input *UpdateAccountInput) (*UpdateAccountOutput, error) {
	id, update, err := parseUpdateAccountInput(input)
	if err != nil {
		return nil, err
	}

	updated, err := h.AccountService.UpdateAccount(ctx, id, update)
	if err != nil {
		return nil, respond.Error(err, "failed to update account")
	}

	return &UpdateAccountOutput{Body: fromRecord(updated)}, nil
}
