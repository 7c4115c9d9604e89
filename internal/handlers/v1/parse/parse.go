// Package parse converts the string-typed request fields shared by all
// handlers (UUIDs, decimal amounts, RFC 3339 timestamps) into domain
// values, failing with 400s that name the offending field.
package parse

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// UUID parses a required UUID field.
func UUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return id, nil
}

// OptionalUUID parses a UUID field that may be empty; empty means nil.
func OptionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := UUID(field, value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Amount parses a required decimal money field.
func Amount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return amount, nil
}

// Time parses a required RFC 3339 timestamp field.
func Time(field, value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return ts, nil
}

// OptionalTime parses a timestamp field that may be empty; empty means nil.
func OptionalTime(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	ts, err := Time(field, value)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}
