package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// ListUsersInput is the Huma input for listing users.
type ListUsersInput struct {
	Name  string `query:"name" doc:"Case-insensitive substring match on name"`
	Email string `query:"email" doc:"Exact email match, case-insensitive"`
}

// ListUsersResponseBody is the response body for listing users.
type ListUsersResponseBody struct {
	Users []User `json:"users" doc:"Matching users"`
}

// ListUsersOutput is the Huma output for listing users.
type ListUsersOutput struct {
	Body ListUsersResponseBody
}

// userLister is the interface for listing users.
type userLister interface {
	ListUsers(ctx context.Context, filter service.UsersFilter) ([]*user.User, error)
}

// ListUsersHandler handles GET /v1/users.
type ListUsersHandler struct {
	UserService userLister
}

// NewListUsersHandler creates a new ListUsersHandler.
func NewListUsersHandler(svc userLister) *ListUsersHandler {
	return &ListUsersHandler{UserService: svc}
}

// Register registers the list users endpoint with the Huma API.
func (h *ListUsersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/v1/users",
		Summary:     "List users",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *ListUsersHandler) handle(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	logData := logging.GetLogData(ctx)

	records, err := h.UserService.ListUsers(ctx, service.UsersFilter{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		return nil, respond.Error(err, "failed to list users")
	}

	if logData != nil {
		logData.AddData("userCount", len(records))
	}

	resp := ListUsersResponseBody{Users: make([]User, len(records))}
	for i, record := range records {
		resp.Users[i] = fromRecord(record)
	}
	return &ListUsersOutput{Body: resp}, nil
}
