package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
)

// DeleteUserInput is the Huma input for deleting a user.
type DeleteUserInput struct {
	ID string `path:"id" doc:"User UUID"`
}

// DeleteUserOutput is the response for deleting a user.
type DeleteUserOutput struct {
	Status int
}

// userDeleter is the interface for deleting users.
type userDeleter interface {
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// DeleteUserHandler handles DELETE /v1/user/{id}.
type DeleteUserHandler struct {
	UserService userDeleter
}

// NewDeleteUserHandler creates a new DeleteUserHandler.
func NewDeleteUserHandler(svc userDeleter) *DeleteUserHandler {
	return &DeleteUserHandler{UserService: svc}
}

// Register registers the delete user endpoint with the Huma API.
func (h *DeleteUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-user",
		Method:      http.MethodDelete,
		Path:        "/v1/user/{id}",
		Summary:     "Delete a user",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *DeleteUserHandler) handle(ctx context.Context, input *DeleteUserInput) (*DeleteUserOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.UserService.DeleteUser(ctx, id); err != nil {
		return nil, respond.Error(err, "failed to delete user")
	}

	return &DeleteUserOutput{Status: http.StatusNoContent}, nil
}
