package user

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// mockUserService is a mock for userCreator.
type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) CreateUser(ctx context.Context, create service.UserCreate) (*user.User, error) {
	args := m.Called(ctx, create)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func newTestAPI(t *testing.T, svc userCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateUserHandler(svc).Register(api)
	return api
}

func TestHTTP_CreateUser_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	now := time.Now().UTC().Truncate(time.Second)

	mockSvc := new(mockUserService)
	mockSvc.On("CreateUser", mock.Anything, mock.MatchedBy(func(create service.UserCreate) bool {
		return create.Name == "Alice" && create.Email == "Alice@Example.com"
	})).Return(&user.User{
		ID:        userID,
		Name:      "Alice",
		Email:     "alice@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}, nil)

	api := newTestAPI(t, mockSvc)
	resp := api.Post("/v1/user", map[string]any{
		"name":  "Alice",
		"email": "Alice@Example.com",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body User
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body.ID)
	assert.Equal(t, "alice@example.com", body.Email)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateUser_DuplicateEmailIs409(t *testing.T) {
	mockSvc := new(mockUserService)
	mockSvc.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, apperr.AlreadyExists("user email already registered", nil))

	api := newTestAPI(t, mockSvc)
	resp := api.Post("/v1/user", map[string]any{
		"name":  "Alice",
		"email": "alice@example.com",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}
