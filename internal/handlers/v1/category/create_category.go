package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// CreateCategoryInput is the Huma input for creating a category.
type CreateCategoryInput struct {
	Body CreateCategoryBody
}

// CreateCategoryBody is the request body for creating a category.
type CreateCategoryBody struct {
	UserID   string `json:"userId" doc:"Owning user UUID"`
	Name     string `json:"name" minLength:"1" doc:"Category name"`
	Type     string `json:"type" enum:"INCOME,EXPENSE" doc:"Category type, immutable after creation"`
	ParentID string `json:"parentId,omitempty" doc:"Parent category UUID, omit for a root category"`
}

// CreateCategoryOutput is the response for creating a category.
type CreateCategoryOutput struct {
	Status int
	Body   Category
}

// categoryCreator is the interface for creating categories.
type categoryCreator interface {
	CreateCategory(ctx context.Context, create service.CategoryCreate) (*category.Category, error)
}

// CreateCategoryHandler handles POST /v1/category.
type CreateCategoryHandler struct {
	CategoryService categoryCreator
}

// NewCreateCategoryHandler creates a new CreateCategoryHandler.
func NewCreateCategoryHandler(svc categoryCreator) *CreateCategoryHandler {
	return &CreateCategoryHandler{CategoryService: svc}
}

// Register registers the create category endpoint with the Huma API.
func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/v1/category",
		Summary:     "Create a category",
		Description: "Creates a category. A parent, when given, must exist and belong to the same user.",
		Tags:        []string{"Categories"},
	}, h.handle)
}

func parseCreateCategoryInput(input *CreateCategoryInput) (service.CategoryCreate, error) {
	userID, err := parse.UUID("userId", input.Body.UserID)
	if err != nil {
		return service.CategoryCreate{}, err
	}

	parentID := uuid.Nil
	if input.Body.ParentID != "" {
		parentID, err = parse.UUID("parentId", input.Body.ParentID)
		if err != nil {
			return service.CategoryCreate{}, err
		}
	}

	return service.CategoryCreate{
		UserID:   userID,
		Name:     input.Body.Name,
		Type:     category.CategoryType(input.Body.Type),
		ParentID: parentID,
	}, nil
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	logData := logging.GetLogData(ctx)

	create, err := parseCreateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createCategoryMs")
	}
	created, err := h.CategoryService.CreateCategory(ctx, create)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to create category")
	}

	if logData != nil {
		logData.AddData("categoryID", created.ID.String())
	}

	return &CreateCategoryOutput{
		Status: http.StatusCreated,
		Body:   fromRecord(created),
	}, nil
}
