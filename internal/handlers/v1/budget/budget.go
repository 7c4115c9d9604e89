// Package budget exposes the budget CRUD endpoints.
package budget

import (
	"time"

	"github.com/carson-networks/finance-server/internal/storage/budget"
)

// Budget is the API response model for a budget.
type Budget struct {
	ID              string `json:"id" doc:"Budget UUID"`
	UserID          string `json:"userId" doc:"Owning user UUID"`
	CategoryID      string `json:"categoryId" doc:"Budgeted expense category UUID"`
	Year            int    `json:"year" doc:"Budget year"`
	Month           int    `json:"month" doc:"Budget month, 1-12"`
	Amount          string `json:"amount" doc:"Decimal spending ceiling for the period"`
	AlertPercentage int    `json:"alertPercentage,omitempty" doc:"Percentage of the ceiling that triggers alerts"`
	CreatedAt       string `json:"createdAt" doc:"RFC 3339 creation time"`
	UpdatedAt       string `json:"updatedAt" doc:"RFC 3339 last update time"`
}

func fromRecord(record *budget.Budget) Budget {
	return Budget{
		ID:              record.ID.String(),
		UserID:          record.UserID.String(),
		CategoryID:      record.CategoryID.String(),
		Year:            record.Year,
		Month:           int(record.Month),
		Amount:          record.Amount.String(),
		AlertPercentage: record.AlertPercentage,
		CreatedAt:       record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       record.UpdatedAt.Format(time.RFC3339),
	}
}
