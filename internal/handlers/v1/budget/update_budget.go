package budget

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/budget"
)

// UpdateBudgetInput is the Huma input for updating a budget.
type UpdateBudgetInput struct {
	ID   string `path:"id" doc:"Budget UUID"`
	Body UpdateBudgetBody
}

// UpdateBudgetBody is the request body for updating a budget. Absent
// fields keep their stored values. The category and period are immutable.
type UpdateBudgetBody struct {
	Amount          *string `json:"amount,omitempty" doc:"Decimal spending ceiling"`
	AlertPercentage *int    `json:"alertPercentage,omitempty" minimum:"0" maximum:"100" doc:"Percentage of the ceiling that triggers alerts"`
}

// UpdateBudgetOutput is the response for updating a budget.
type UpdateBudgetOutput struct {
	Body Budget
}

// budgetUpdater is the interface for updating budgets.
type budgetUpdater interface {
	UpdateBudget(ctx context.Context, id uuid.UUID, update service.BudgetUpdate) (*budget.Budget, error)
}

// UpdateBudgetHandler handles PATCH /v1/budget/{id}.
type UpdateBudgetHandler struct {
	BudgetService budgetUpdater
}

// NewUpdateBudgetHandler creates a new UpdateBudgetHandler.
func NewUpdateBudgetHandler(svc budgetUpdater) *UpdateBudgetHandler {
	return &UpdateBudgetHandler{BudgetService: svc}
}

// Register registers the update budget endpoint with the Huma API.
func (h *UpdateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-budget",
		Method:      http.MethodPatch,
		Path:        "/v1/budget/{id}",
		Summary:     "Update a budget",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *UpdateBudgetHandler) handle(ctx context.Context, input *UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	update := service.BudgetUpdate{}
	if input.Body.Amount != nil {
		amount, err := parse.Amount("amount", *input.Body.Amount)
		if err != nil {
			return nil, err
		}
		update.Amount = omit.From(amount)
	}
	if input.Body.AlertPercentage != nil {
		update.AlertPercentage = omit.From(*input.Body.AlertPercentage)
	}

	updated, err := h.BudgetService.UpdateBudget(ctx, id, update)
	if err != nil {
		return nil, respond.Error(err, "failed to update budget")
	}

	return &UpdateBudgetOutput{Body: fromRecord(updated)}, nil
}
