package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
)

// DeleteBudgetInput is the Huma input for deleting a budget.
type DeleteBudgetInput struct {
	ID string `path:"id" doc:"Budget UUID"`
}

// DeleteBudgetOutput is the response for deleting a budget.
type DeleteBudgetOutput struct {
	Status int
}

// budgetDeleter is the interface for deleting budgets.
type budgetDeleter interface {
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

// DeleteBudgetHandler handles DELETE /v1/budget/{id}.
type DeleteBudgetHandler struct {
	BudgetService budgetDeleter
}

// NewDeleteBudgetHandler creates a new DeleteBudgetHandler.
func NewDeleteBudgetHandler(svc budgetDeleter) *DeleteBudgetHandler {
	return &DeleteBudgetHandler{BudgetService: svc}
}

// Register registers the delete budget endpoint with the Huma API.
func (h *DeleteBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-budget",
		Method:      http.MethodDelete,
		Path:        "/v1/budget/{id}",
		Summary:     "Delete a budget",
		Description: "Removes a budget whose period holds no transactions in the budgeted category.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *DeleteBudgetHandler) handle(ctx context.Context, input *DeleteBudgetInput) (*DeleteBudgetOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.BudgetService.DeleteBudget(ctx, id); err != nil {
		return nil, respond.Error(err, "failed to delete budget")
	}

	return &DeleteBudgetOutput{Status: http.StatusNoContent}, nil
}
