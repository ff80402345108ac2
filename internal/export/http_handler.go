package export

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rpattn/barmenu/internal/filters"
)

// URL parameters read by the handler.
const (
	ParamCategory = "category"
	ParamFormat   = "format"
)

// ErrorWriter reports a failed request.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

type Handler struct {
	service *Service
	onError ErrorWriter
}

// NewHTTPHandler serves a category product export. It expects the chi route
// parameters {category} and {format}.
func NewHTTPHandler(service *Service, onError ErrorWriter) http.Handler {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
	return &Handler{service: service, onError: onError}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.ParseInt(chi.URLParam(r, ParamCategory), 10, 64)
	if err != nil || categoryID <= 0 {
		http.Error(w, "invalid category identifier", http.StatusNotFound)
		return
	}
	format, err := ParseFormat(chi.URLParam(r, ParamFormat))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	file, err := h.service.CategoryProducts(r.Context(), categoryID, filters.FromQuery(r.URL.Query()), format)
	if err != nil {
		h.onError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Name))
	http.ServeContent(w, r, file.Name, file.ModTime, bytes.NewReader(file.Data))
}
