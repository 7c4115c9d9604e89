package user

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
)

// User represents a user record.
type User struct {
	ID              uuid.UUID
	Name            string
	Email           string
	DefaultCurrency string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserFilter specifies filters for listing users. Zero values mean "any".
// Name matching is substring and case-insensitive.
type UserFilter struct {
	Name  string
	Email string
}

// UserPatch is a partial update. Only set fields are written.
type UserPatch struct {
	Name            omit.Val[string]
	DefaultCurrency omit.Val[string]
	UpdatedAt       omit.Val[time.Time]
}

// IUserCollection defines the interface for user storage operations.
// This abstraction allows swapping the implementation (e.g. Mongo) without changing callers.
//
//go:generate mockery --name IUserCollection --output mock_IUserCollection.go
type IUserCollection interface {
	Insert(ctx context.Context, record *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter *UserFilter) ([]*User, error)
	Update(ctx context.Context, id uuid.UUID, patch *UserPatch) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
