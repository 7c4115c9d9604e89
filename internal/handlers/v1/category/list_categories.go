package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// ListCategoriesInput is the Huma input for listing categories.
type ListCategoriesInput struct {
	UserID   string `query:"userId" doc:"Filter by owning user UUID"`
	Type     string `query:"type" doc:"Filter by category type: INCOME or EXPENSE"`
	ParentID string `query:"parentId" doc:"Filter by parent category UUID"`
}

// ListCategoriesResponseBody is the response body for listing categories.
type ListCategoriesResponseBody struct {
	Categories []Category `json:"categories" doc:"Matching categories"`
}

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body ListCategoriesResponseBody
}

// categoryLister is the interface for listing categories.
type categoryLister interface {
	ListCategories(ctx context.Context, filter service.CategoriesFilter) ([]*category.Category, error)
}

// ListCategoriesHandler handles GET /v1/categories.
type ListCategoriesHandler struct {
	CategoryService categoryLister
}

// NewListCategoriesHandler creates a new ListCategoriesHandler.
func NewListCategoriesHandler(svc categoryLister) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc}
}

// Register registers the list categories endpoint with the Huma API.
func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	logData := logging.GetLogData(ctx)

	userID, err := parse.OptionalUUID("userId", input.UserID)
	if err != nil {
		return nil, err
	}
	parentID, err := parse.OptionalUUID("parentId", input.ParentID)
	if err != nil {
		return nil, err
	}

	records, err := h.CategoryService.ListCategories(ctx, service.CategoriesFilter{
		UserID:   userID,
		Type:     category.CategoryType(input.Type),
		ParentID: parentID,
	})
	if err != nil {
		return nil, respond.Error(err, "failed to list categories")
	}

	if logData != nil {
		logData.AddData("categoryCount", len(records))
	}

	resp := ListCategoriesResponseBody{Categories: make([]Category, len(records))}
	for i, record := range records {
		resp.Categories[i] = fromRecord(record)
	}
	return &ListCategoriesOutput{Body: resp}, nil
}
