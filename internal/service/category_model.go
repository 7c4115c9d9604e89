package service

import (
	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage/category"
)

// CategoryCreate is the input for creating a category. ParentID is
// uuid.Nil for root categories.
type CategoryCreate struct {
	UserID   uuid.UUID
	Name     string
	Type     category.CategoryType
	ParentID uuid.UUID
}

// CategoryUpdate is a partial update. The category type is immutable.
type CategoryUpdate struct {
	Name     omit.Val[string]
	ParentID omit.Val[uuid.UUID]
}

func (u CategoryUpdate) isEmpty() bool {
	return !u.Name.IsValue() && !u.ParentID.IsValue()
}

// CategoriesFilter narrows ListCategories. Nil/zero values mean "any".
type CategoriesFilter struct {
	UserID   *uuid.UUID
	Type     category.CategoryType
	ParentID *uuid.UUID
}
