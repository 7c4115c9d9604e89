package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// GetCategoryInput is the Huma input for fetching a category.
type GetCategoryInput struct {
	ID string `path:"id" doc:"Category UUID"`
}

// GetCategoryOutput is the response for fetching a category.
type GetCategoryOutput struct {
	Body Category
}

// categoryGetter is the interface for fetching categories.
type categoryGetter interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error)
}

// GetCategoryHandler handles GET /v1/category/{id}.
type GetCategoryHandler struct {
	CategoryService categoryGetter
}

// NewGetCategoryHandler creates a new GetCategoryHandler.
func NewGetCategoryHandler(svc categoryGetter) *GetCategoryHandler {
	return &GetCategoryHandler{CategoryService: svc}
}

// Register registers the get category endpoint with the Huma API.
func (h *GetCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-category",
		Method:      http.MethodGet,
		Path:        "/v1/category/{id}",
		Summary:     "Get a category",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *GetCategoryHandler) handle(ctx context.Context, input *GetCategoryInput) (*GetCategoryOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	record, err := h.CategoryService.GetCategory(ctx, id)
	if err != nil {
		return nil, respond.Error(err, "failed to get category")
	}

	return &GetCategoryOutput{Body: fromRecord(record)}, nil
}
