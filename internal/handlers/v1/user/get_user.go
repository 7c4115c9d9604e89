package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/handlers/v1/parse"
	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// GetUserInput is the Huma input for fetching a user.
type GetUserInput struct {
	ID string `path:"id" doc:"User UUID"`
}

// GetUserOutput is the response for fetching a user.
type GetUserOutput struct {
	Body User
}

// userGetter is the interface for fetching users.
type userGetter interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// GetUserHandler handles GET /v1/user/{id}.
type GetUserHandler struct {
	UserService userGetter
}

// NewGetUserHandler creates a new GetUserHandler.
func NewGetUserHandler(svc userGetter) *GetUserHandler {
	return &GetUserHandler{UserService: svc}
}

// Register registers the get user endpoint with the Huma API.
func (h *GetUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/v1/user/{id}",
		Summary:     "Get a user",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *GetUserHandler) handle(ctx context.Context, input *GetUserInput) (*GetUserOutput, error) {
	id, err := parse.UUID("id", input.ID)
	if err != nil {
		return nil, err
	}

	record, err := h.UserService.GetUser(ctx, id)
	if err != nil {
		return nil, respond.Error(err, "failed to get user")
	}

	return &GetUserOutput{Body: fromRecord(record)}, nil
}
