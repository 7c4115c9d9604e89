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

// CreateUserInput is the Huma input for creating a user.
type CreateUserInput struct {
	Body CreateUserBody
}

// CreateUserBody is the request body for creating a user.
type CreateUserBody struct {
	Name            string `json:"name" minLength:"1" doc:"Display name"`
	Email           string `json:"email" minLength:"3" doc:"Email, unique case-insensitively"`
	DefaultCurrency string `json:"defaultCurrency,omitempty" doc:"Preferred currency code"`
}

// CreateUserOutput is the response for creating a user.
type CreateUserOutput struct {
	Status int
	Body   User
}

// userCreator is the interface for creating users.
type userCreator interface {
	CreateUser(ctx context.Context, create service.UserCreate) (*user.User, error)
}

// CreateUserHandler handles POST /v1/user.
type CreateUserHandler struct {
	UserService userCreator
}

// NewCreateUserHandler creates a new CreateUserHandler.
func NewCreateUserHandler(svc userCreator) *CreateUserHandler {
	return &CreateUserHandler{UserService: svc}
}

// Register registers the create user endpoint with the Huma API.
func (h *CreateUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-user",
		Method:      http.MethodPost,
		Path:        "/v1/user",
		Summary:     "Create a user",
		Description: "Signs up a user. The email is folded to lower case and must be unique.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *CreateUserHandler) handle(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createUserMs")
	}
	created, err := h.UserService.CreateUser(ctx, service.UserCreate{
		Name:            input.Body.Name,
		Email:           input.Body.Email,
		DefaultCurrency: input.Body.DefaultCurrency,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, respond.Error(err, "failed to create user")
	}

	if logData != nil {
		logData.AddData("userID", created.ID.String())
	}

	return &CreateUserOutput{
		Status: http.StatusCreated,
		Body:   fromRecord(created),
	}, nil
}
