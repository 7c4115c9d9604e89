package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/budget"
)

// CreateBudgetInput is the Huma input for creating a budget.
type CreateBudgetInput struct {
	Body CreateBudgetBody
}

// CreateBudgetBody is the request body for creating a budget.
type CreateBudgetBody struct {
	UserID          string `json:"userId" doc:"Owning user UUID"`
	CategoryID      string `json:"categoryId" doc:"Expense category UUID"`
	Year            int    `json:"year" minimum:"1970" doc:"Budget year"`
	Month           int    `json:"month" minimum:"1" maximum:"12" doc:"Budget month, 1-12"`
	Amount          string `json:"amount" doc:"Decimal spending ceiling"`
	AlertPercentage int    `json:"alertPercentage,omitempty" minimum:"0" maximum:"100" doc:"Percentage of the ceiling that triggers alerts"`
}

// CreateBudgetOutput is the response for creating a budget.
type CreateBudgetOutput struct {
	Status int
	Body   Budget
}

// budgetCreator is the interface for creating budgets.
type budgetCreator interface {
	CreateBudget(ctx context.Context, create service.BudgetCreate) (*budget.Budget, error)
}

// CreateBudgetHandler handles POST /v1/budget.
type CreateBudgetHandler struct {
	BudgetService budgetCreator
}

// NewCreateBudgetHandler creates a new CreateBudgetHandler.
func NewCreateBudgetHandler(svc budgetCreator) *CreateBudgetHandler {
	return &CreateBudgetHandler{BudgetService: svc}
}

// Register registers the create budget endpoint with the Huma API.
func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget",
		Summary:     "Create a budget",
		Description: "Sets a monthly spending ceiling for an expense category. One budget per category and month.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func parseCreateBudgetInput(input *CreateBudgetInput) (service.BudgetCreate, error) {
	userID, err := parse.UUID("userId", input.Body.UserID)
	if err != nil {
		return service.BudgetCreate{}, err
	}
	categoryID, err := parse.UUID("categoryId", input.Body.CategoryID)
	if err != nil {
		return service.BudgetCreate{}, err
	}
	amount, err := parse.Amount("amount", input.Body.Amount)
	if err != nil {
		return service.BudgetCreate{}, err
	}

	return service.BudgetCreate{
		UserID:          userID,
		CategoryID:      categoryID,
		Year:            input.Body.Year,
		Month:           time.Month(input.Body.Month),
		Amount:          amount,
		AlertPercentage: input.Body.AlertPercentage,
	}, nil
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	logData := logging.GetLogData(ctx)

	create, err := parseCreateBudgetInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createBudgetMs")
	}
	created, err := h.BudgetService.CreateBudget(ctx, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to create budget")
	}

	if logData != nil {
		logData.AddData("budgetID", created.ID.String())
	}

	return &CreateBudgetOutput{
		Status: http.StatusCreated,
		Body:   fromRecord(created),
	}, nil
}
