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

// ListBudgetsInput is the Huma input for listing budgets.
type ListBudgetsInput struct {
	UserID     string `query:"userId" doc:"Filter by owning user UUID"`
	CategoryID string `query:"categoryId" doc:"Filter by category UUID"`
	Year       int    `query:"year" doc:"Filter by budget year"`
	Month      int    `query:"month" minimum:"0" maximum:"12" doc:"Filter by budget month, 1-12"`
}

// ListBudgetsResponseBody is the response body for listing budgets.
type ListBudgetsResponseBody struct {
	Budgets []Budget `json:"budgets" doc:"Matching budgets"`
}

// ListBudgetsOutput is the Huma output for listing budgets.
type ListBudgetsOutput struct {
	Body ListBudgetsResponseBody
}

// budgetLister is the interface for listing budgets.
type budgetLister interface {
	ListBudgets(ctx context.Context, filter service.BudgetsFilter) ([]*budget.Budget, error)
}

// ListBudgetsHandler handles GET /v1/budgets.
type ListBudgetsHandler struct {
	BudgetService budgetLister
}

// NewListBudgetsHandler creates a new ListBudgetsHandler.
func NewListBudgetsHandler(svc budgetLister) *ListBudgetsHandler {
	return &ListBudgetsHandler{BudgetService: svc}
}

// Register registers the list budgets endpoint with the Huma API.
func (h *ListBudgetsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budgets",
		Summary:     "List budgets",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *ListBudgetsHandler) handle(ctx context.Context, input *ListBudgetsInput) (*ListBudgetsOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := parse.OptionalUUID("userId", input.UserID)
	if err != nil {
		return nil, err
	}
	categoryID, err := parse.OptionalUUID("categoryId", input.CategoryID)
	if err != nil {
		return nil, err
	}

	records, err := h.BudgetService.ListBudgets(ctx, service.BudgetsFilter{
		UserID:     userID,
		CategoryID: categoryID,
		Year:       input.Year,
		Month:      time.Month(input.Month),
	})
	if err != nil {
		return nil, respond.Error(err, "failed to list budgets")
	}

	if logData != nil {
		logData.AddData("budgetCount", len(records))
	}

	resp := ListBudgetsResponseBody{Budgets: make([]Budget, len(records))}
	for i, record := range records {
		resp.Budgets[i] = fromRecord(record)
	}
	return &ListBudgetsOutput{Body: resp}, nil
}
