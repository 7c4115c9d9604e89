package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/storage/budget"
)

// GetBudgetInput is the Huma input for fetching a budget.
type GetBudgetInput struct {
	ID string `path:"id" doc:"Budget UUID"`
}

// GetBudgetOutput is the response for fetching a budget.
type GetBudgetOutput struct {
	Body Budget
}

// budgetGetter is the interface for fetching budgets.
type budgetGetter interface {
	GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error)
}

// GetBudgetHandler handles GET /v1/budget/{id}.
type GetBudgetHandler struct {
	BudgetService budgetGetter
}

// NewGetBudgetHandler creates a new GetBudgetHandler.
func NewGetBudgetHandler(svc budgetGetter) *GetBudgetHandler {
	return &GetBudgetHandler{BudgetService: svc}
}

// Register registers the get budget endpoint with the Huma API.
func (h *GetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}",
		Summary:     "Get a budget",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *GetBudgetHandler) handle(ctx context.Context, input *GetBudgetInput) (*GetBudgetOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	record, err := h.BudgetService.GetBudget(ctx, id)
	if err != nil {
		return nil, respond.Error(err, "failed to get budget")
	}

	return &GetBudgetOutput{Body: fromRecord(record)}, nil
}
