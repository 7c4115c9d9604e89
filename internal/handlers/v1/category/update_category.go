package category

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// UpdateCategoryInput is the Huma input for updating a category.
type UpdateCategoryInput struct {
	ID   string `path:"id" doc:"Category UUID"`
	Body UpdateCategoryBody
}

// UpdateCategoryBody is the request body for updating a category. Absent
// fields keep their stored values. The category type is immutable; an
// empty parentId string clears the parent.
type UpdateCategoryBody struct {
	Name     *string `json:"name,omitempty" minLength:"1" doc:"Category name"`
	ParentID *string `json:"parentId,omitempty" doc:"Parent category UUID, empty string to make the category a root"`
}

// UpdateCategoryOutput is the response for updating a category.
type UpdateCategoryOutput struct {
	Body Category
}

// categoryUpdater is the interface for updating categories.
type categoryUpdater interface {
	UpdateCategory(ctx context.Context, id uuid.UUID, update service.CategoryUpdate) (*category.Category, error)
}

// UpdateCategoryHandler handles PATCH /v1/category/{id}.
type UpdateCategoryHandler struct {
	CategoryService categoryUpdater
}

// NewUpdateCategoryHandler creates a new UpdateCategoryHandler.
func NewUpdateCategoryHandler(svc categoryUpdater) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{CategoryService: svc}
}

// Register registers the update category endpoint with the Huma API.
func (h *UpdateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPatch,
		Path:        "/v1/category/{id}",
		Summary:     "Update a category",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func (h *UpdateCategoryHandler) handle(ctx context.Context, input *UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	update := service.CategoryUpdate{}
	if input.Body.Name != nil {
		update.Name = omit.From(*input.Body.Name)
	}
	if input.Body.ParentID != nil {
		parentID := uuid.Nil
		if *input.Body.ParentID != "" {
			parentID, err = parse.UUID("parentId", *input.Body.ParentID)
			if err != nil {
				return nil, err
			}
		}
		update.ParentID = omit.From(parentID)
	}

	updated, err := h.CategoryService.UpdateCategory(ctx, id, update)
	if err != nil {
		return nil, respond.Error(err, "failed to update category")
	}

	return &UpdateCategoryOutput{Body: fromRecord(updated)}, nil
}
