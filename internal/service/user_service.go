package service

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// UserService handles user business logic.
type UserService struct {
	storage *storage.Storage
}

// NewUserService creates a new UserService.
func NewUserService(store *storage.Storage) *UserService {
	return &UserService{storage: store}
}

// CreateUser signs up a new user. Emails are case-folded and unique.
func (s *UserService) CreateUser(ctx context.Context, create UserCreate) (*user.User, error) {
	email := foldEmail(create.Email)

	existing, err := s.storage.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("user email already registered", map[string]string{"email": email})
	}

	now := time.Now().UTC()
	record := &user.User{
		ID:              newID(),
		Name:            create.Name,
		Email:           email,
		DefaultCurrency: create.DefaultCurrency,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.storage.Users.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	record, err := s.storage.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.NotFound("user not found", map[string]string{"id": id.String()})
	}
	return record, nil
}

// ListUsers returns users matching the non-empty filter fields.
func (s *UserService) ListUsers(ctx context.Context, filter UsersFilter) ([]*user.User, error) {
	storageFilter := &user.UserFilter{Name: filter.Name}
	if filter.Email != "" {
		storageFilter.Email = foldEmail(filter.Email)
	}
	return s.storage.Users.List(ctx, storageFilter)
}

// UpdateUser applies a partial update to the mutable fields.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, update UserUpdate) (*user.User, error) {
	if update.isEmpty() {
		return nil, apperr.Validation("update payload is empty", map[string]string{"id": id.String()})
	}

	patch := &user.UserPatch{
		Name:            update.Name,
		DefaultCurrency: update.DefaultCurrency,
		UpdatedAt:       omit.From(time.Now().UTC()),
	}
	updated, err := s.storage.Users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("user not found", map[string]string{"id": id.String()})
	}
	return updated, nil
}

// DeleteUser removes a user. Owned entities are not cascade-checked.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.storage.Users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("user not found", map[string]string{"id": id.String()})
	}
	return nil
}

func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
