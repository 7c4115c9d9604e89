package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/account"
)

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	UserID          string `json:"userId" doc:"Owning user UUID"`
	Name            string `json:"name" minLength:"1" doc:"Account name"`
	Type            string `json:"type" enum:"CHECKING,SAVINGS,CASH,CREDIT_CARD,INVESTMENT" doc:"Account type"`
	Currency        string `json:"currency,omitempty" doc:"Currency code"`
	Description     string `json:"description,omitempty" doc:"Free-form description"`
	MinimumBalance  string `json:"minimumBalance,omitempty" doc:"Decimal floor (e.g. '0' or '-500'), defaults to 0"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Decimal opening balance, defaults to 0"`
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   Account
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, create service.AccountCreate) (*account.Account, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Opens an account for a user. The starting balance must not be below the minimum balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.AccountCreate, error) {
	userID, err := parse.UUID("userId", input.Body.UserID)
	if err != nil {
		return service.AccountCreate{}, err
	}

	minimum := decimal.Zero
	if input.Body.MinimumBalance != "" {
		minimum, err = parse.Amount("minimumBalance", input.Body.MinimumBalance)
		if err != nil {
			return service.AccountCreate{}, err
		}
	}

	starting := decimal.Zero
	if input.Body.StartingBalance != "" {
		starting, err = parse.Amount("startingBalance", input.Body.StartingBalance)
		if err != nil {
			return service.AccountCreate{}, err
		}
	}

	accountType := account.AccountType(input.Body.Type)
	if !accountType.IsValid() {
		return service.AccountCreate{}, huma.NewError(http.StatusBadRequest, "invalid type", nil)
	}

	return service.AccountCreate{
		UserID:          userID,
		Name:            input.Body.Name,
		Type:            accountType,
		Currency:        input.Body.Currency,
		Description:     input.Body.Description,
		MinimumBalance:  minimum,
		StartingBalance: starting,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	create, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	created, err := h.AccountService.CreateAccount(ctx, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to create account")
	}

	if logData != nil {
		logData.AddData("accountID", created.ID.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   fromRecord(created),
	}, nil
}
