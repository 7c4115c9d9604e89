// Package user exposes the user CRUD endpoints.
package user

import (
	"time"

	"github.com/carson-networks/finance-server/internal/storage/user"
)

// User is the API response model for a user.
type User struct {
	ID              string `json:"id" doc:"User UUID"`
	Name            string `json:"name" doc:"Display name"`
	Email           string `json:"email" doc:"Unique email, stored lower-case"`
	DefaultCurrency string `json:"defaultCurrency,omitempty" doc:"Preferred currency code"`
	CreatedAt       string `json:"createdAt" doc:"RFC 3339 creation time"`
	UpdatedAt       string `json:"updatedAt" doc:"RFC 3339 last update time"`
}

func fromRecord(record *user.User) User {
	return User{
		ID:              record.ID.String(),
		Name:            record.Name,
		Email:           record.Email,
		DefaultCurrency: record.DefaultCurrency,
		CreatedAt:       record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       record.UpdatedAt.Format(time.RFC3339),
	}
}
