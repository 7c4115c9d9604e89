// Package category exposes the category CRUD endpoints.
package category

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-server/internal/storage/category"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	UserID    string `json:"userId" doc:"Owning user UUID"`
	Name      string `json:"name" doc:"Category name"`
	Type      string `json:"type" doc:"Category type: INCOME or EXPENSE"`
	ParentID  string `json:"parentId,omitempty" doc:"Parent category UUID, absent for root categories"`
	CreatedAt string `json:"createdAt" doc:"RFC 3339 creation time"`
	UpdatedAt string `json:"updatedAt" doc:"RFC 3339 last update time"`
}

func fromRecord(record *category.Category) Category {
	out := Category{
		ID:        record.ID.String(),
		UserID:    record.UserID.String(),
		Name:      record.Name,
		Type:      string(record.Type),
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
		UpdatedAt: record.UpdatedAt.Format(time.RFC3339),
	}
	if record.ParentID != uuid.Nil {
		out.ParentID = record.ParentID.String()
	}
	return out
}
