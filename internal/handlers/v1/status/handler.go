// Package status exposes the health endpoint.
package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carson-networks/finance-server/internal/logging"
)

// pinger is the slice of storage the health check needs.
type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Storage pinger
}

func NewHandler(store pinger) Handler {
	return Handler{Storage: store}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if h.Storage != nil {
		if err := h.Storage.Ping(req.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return fmt.Errorf("status: storage unreachable: %w", err)
		}
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
