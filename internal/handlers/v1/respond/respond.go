// Package respond maps domain errors onto HTTP error responses so every
// handler translates service failures the same way.
package respond

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-server/internal/apperr"
)

// Error converts a service error into a huma status error. Domain errors
// carry their own message; anything else becomes a 500 with the given
// fallback message.
func Error(err error, fallback string) error {
	switch {
	case apperr.IsNotFound(err):
		return huma.NewError(http.StatusNotFound, err.Error())
	case apperr.IsAlreadyExists(err):
		return huma.NewError(http.StatusConflict, err.Error())
	case apperr.IsValidation(err):
		return huma.NewError(http.StatusBadRequest, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, fallback, err)
	}
}
