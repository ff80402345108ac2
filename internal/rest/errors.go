package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/pkg/logger"
)

type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// writeJSON encodes payload as the response body. The status line is already
// sent when encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, r *http.Request, base *zap.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		logger.FromContext(r.Context(), base).Error("failed to write response",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
}

// ErrorWriter maps err to a JSON error response: 422 for validation failures,
// 404 for missing records and 500 for anything else.
func ErrorWriter(base *zap.Logger) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		if verr, ok := domain.AsValidationError(err); ok {
			writeJSON(w, r, base, http.StatusUnprocessableEntity, errorResponse{
				Message: verr.FirstMessage(),
				Errors:  verr.Fields(),
			})
			return
		}

		var notFound *domain.NotFoundError
		switch {
		case errors.As(err, &notFound):
			writeJSON(w, r, base, http.StatusNotFound, errorResponse{Message: notFound.Error()})
			return
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, r, base, http.StatusNotFound, errorResponse{Message: domain.ErrNotFound.Error()})
			return
		}

		logger.FromContext(r.Context(), base).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, r, base, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}
