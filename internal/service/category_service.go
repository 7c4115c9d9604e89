package service

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/apperr"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/category"
)

// CategoryService handles category business logic.
type CategoryService struct {
	storage *storage.Storage
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(store *storage.Storage) *CategoryService {
	return &CategoryService{storage: store}
}

// CreateCategory creates a category for an existing user. A parent, when
// given, must exist and belong to the same user.
func (s *CategoryService) CreateCategory(ctx context.Context, create CategoryCreate) (*category.Category, error) {
	if !create.Type.IsValid() {
		return nil, apperr.Validation("invalid category type", map[string]string{"categoryType": string(create.Type)})
	}
	if err := ensureUserExists(ctx, s.storage, create.UserID); err != nil {
		return nil, err
	}
	if create.ParentID != uuid.Nil {
		if err := s.checkParent(ctx, create.ParentID, create.UserID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	record := &category.Category{
		ID:        newID(),
		UserID:    create.UserID,
		Name:      create.Name,
		Type:      create.Type,
		ParentID:  create.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.Categories.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetCategory retrieves a category by ID.
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	record, err := s.storage.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.NotFound("category not found", map[string]string{"id": id.String()})
	}
	return record, nil
}

// ListCategories returns categories matching the non-empty filter fields.
func (s *CategoryService) ListCategories(ctx context.Context, filter CategoriesFilter) ([]*category.Category, error) {
	storageFilter := &category.CategoryFilter{
		UserID:   filter.UserID,
		Type:     filter.Type,
		ParentID: filter.ParentID,
	}
	return s.storage.Categories.List(ctx, storageFilter)
}

// UpdateCategory applies a partial update to name and parent.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, update CategoryUpdate) (*category.Category, error) {
	if update.isEmpty() {
		return nil, apperr.Validation("update payload is empty", map[string]string{"id": id.String()})
	}

	if parentID, ok := update.ParentID.Get(); ok && parentID != uuid.Nil {
		if parentID == id {
			return nil, apperr.Validation("category cannot be its own parent", map[string]string{"id": id.String()})
		}
		current, err := s.GetCategory(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.checkParent(ctx, parentID, current.UserID); err != nil {
			return nil, err
		}
	}

	patch := &category.CategoryPatch{
		Name:      update.Name,
		ParentID:  update.ParentID,
		UpdatedAt: omit.From(time.Now().UTC()),
	}
	updated, err := s.storage.Categories.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("category not found", map[string]string{"id": id.String()})
	}
	return updated, nil
}

// DeleteCategory removes a category that no transaction references.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	referenced, err := s.storage.Transactions.ExistsForCategory(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return apperr.Validation("category has transactions", map[string]string{"id": id.String()})
	}

	deleted, err := s.storage.Categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("category not found", map[string]string{"id": id.String()})
	}
	return nil
}

func (s *CategoryService) checkParent(ctx context.Context, parentID, userID uuid.UUID) error {
	parent, err := s.storage.Categories.FindByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return apperr.NotFound("parent category not found", map[string]string{"parentId": parentID.String()})
	}
	if parent.UserID != userID {
		return apperr.Validation("parent category belongs to a different user", map[string]string{
			"parentId": parentID.String(),
			"userId":   userID.String(),
		})
	}
	return nil
}
