package category

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
)

// CategoryType classifies a category as income or expense. The type is
// immutable once the category is created.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// IsValid reports whether t is one of the known category types.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category represents a category record. ParentID is uuid.Nil for root
// categories.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      CategoryType
	ParentID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryFilter specifies filters for listing categories. Nil/zero values mean "any".
type CategoryFilter struct {
	UserID   *uuid.UUID
	Type     CategoryType
	ParentID *uuid.UUID
}

// CategoryPatch is a partial update. Only set fields are written.
// The category type is deliberately absent: it cannot change.
type CategoryPatch struct {
	Name      omit.Val[string]
	ParentID  omit.Val[uuid.UUID]
	UpdatedAt omit.Val[time.Time]
}

// ICategoryCollection defines the interface for category storage operations.
// This abstraction allows swapping the implementation (e.g. Mongo) without changing callers.
//
//go:generate mockery --name ICategoryCollection --output mock_ICategoryCollection.go
type ICategoryCollection interface {
	Insert(ctx context.Context, record *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context, filter *CategoryFilter) ([]*Category, error)
	Update(ctx context.Context, id uuid.UUID, patch *CategoryPatch) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
