package user

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// UpdateUserInput is the Huma input for updating a user.
type UpdateUserInput struct {
	ID   string `path:"id" doc:"User UUID"`
	Body UpdateUserBody
}

// UpdateUserBody is the request body for updating a user. Absent fields
// keep their stored values.
type UpdateUserBody struct {
	Name            *string `json:"name,omitempty" minLength:"1" doc:"Display name"`
	DefaultCurrency *string `json:"defaultCurrency,omitempty" doc:"Preferred currency code"`
}

// UpdateUserOutput is the response for updating a user.
type UpdateUserOutput struct {
	Body User
}

// userUpdater is the interface for updating users.
type userUpdater interface {
	UpdateUser(ctx context.Context, id uuid.UUID, update service.UserUpdate) (*user.User, error)
}

// UpdateUserHandler handles PATCH /v1/user/{id}.
type UpdateUserHandler struct {
	UserService userUpdater
}

// NewUpdateUserHandler creates a new UpdateUserHandler.
func NewUpdateUserHandler(svc userUpdater) *UpdateUserHandler {
	return &UpdateUserHandler{UserService: svc}
}

// Register registers the update user endpoint with the Huma API.
func (h *UpdateUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-user",
		Method:      http.MethodPatch,
		Path:        "/v1/user/{id}",
		Summary:     "Update a user",
		Description: "Applies a partial update to name and default currency. The email is immutable.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *UpdateUserHandler) handle(ctx context.Context, input *UpdateUserInput) (*UpdateUserOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	update := service.UserUpdate{}
	if input.Body.Name != nil {
		update.Name = omit.From(*input.Body.Name)
	}
	if input.Body.DefaultCurrency != nil {
		update.DefaultCurrency = omit.From(*input.Body.DefaultCurrency)
	}

	updated, err := h.UserService.UpdateUser(ctx, id, update)
	if err != nil {
		return nil, respond.Error(err, "failed to update user")
	}

	return &UpdateUserOutput{Body: fromRecord(updated)}, nil
}
