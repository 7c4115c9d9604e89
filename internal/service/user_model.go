package service

import (
	"github.com/aarondl/opt/omit"
)

// UserCreate is the input for signing up a user.
type UserCreate struct {
	Name            string
	Email           string
	DefaultCurrency string
}

// UserUpdate is a partial update of the mutable user fields.
type UserUpdate struct {
	Name            omit.Val[string]
	DefaultCurrency omit.Val[string]
}

func (u UserUpdate) isEmpty() bool {
	return !u.Name.IsValue() && !u.DefaultCurrency.IsValue()
}

// UsersFilter narrows ListUsers. Zero values mean "any".
type UsersFilter struct {
	Name  string
	Email string
}
