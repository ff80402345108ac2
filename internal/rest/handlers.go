// Package rest serves the catalog as JSON under /api/v1.
package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/export"
	"github.com/rpattn/barmenu/internal/filters"
)

// Catalog is the part of the catalog the handlers read from.
type Catalog interface {
	ListCategories(ctx context.Context, raw filters.Raw) (domain.PaginationEnvelope[domain.Category], error)
	ListProducts(ctx context.Context, raw filters.Raw) (domain.PaginationEnvelope[domain.Product], error)
	ListIngredients(ctx context.Context, raw filters.Raw) (domain.PaginationEnvelope[domain.Ingredient], error)
	ListCategoryProducts(ctx context.Context, categoryID int64, raw filters.Raw) (domain.PaginationEnvelope[domain.Product], error)
	AllCategoryProducts(ctx context.Context, categoryID int64, raw filters.Raw) ([]domain.Product, error)
	Category(ctx context.Context, id int64) (domain.Category, error)
	IngredientsForProducts(ctx context.Context, productIDs []int64) (map[int64][]domain.ProductIngredient, error)
}

// ParamCategory is the route parameter holding a category ID.
const ParamCategory = "category"

type Handler struct {
	catalog  Catalog
	exporter *export.Service
	logger   *zap.Logger
	fail     func(w http.ResponseWriter, r *http.Request, err error)
}

func NewHandler(catalog Catalog, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog:  catalog,
		exporter: export.NewService(catalog, export.WithLogger(logger)),
		logger:   logger,
		fail:     ErrorWriter(logger),
	}
}

// Routes returns the /api/v1 routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/categories", h.listCategories)
	r.Route("/categories/{"+ParamCategory+"}", func(r chi.Router) {
		r.Get("/", h.showCategory)
		r.Get("/products", h.listCategoryProducts)
		r.Get("/products/all", h.allCategoryProducts)
		r.Method(http.MethodGet, "/products/export.{"+export.ParamFormat+"}", export.NewHTTPHandler(h.exporter, h.fail))
	})
	r.Get("/products", h.listProducts)
	r.Get("/ingredients", h.listIngredients)
	return r
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.ListCategories(r.Context(), filters.FromQuery(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, newPage(r, env, toCategoryResource))
}

func (h *Handler) showCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		h.fail(w, r, &domain.NotFoundError{Resource: "category"})
		return
	}
	category, err := h.catalog.Category(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, itemResponse[categoryResource]{Data: toCategoryResource(category)})
}

func (h *Handler) listCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		h.fail(w, r, &domain.NotFoundError{Resource: "category"})
		return
	}
	env, err := h.catalog.ListCategoryProducts(r.Context(), id, filters.FromQuery(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeProductPage(w, r, env)
}

func (h *Handler) allCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(r)
	if !ok {
		h.fail(w, r, &domain.NotFoundError{Resource: "category"})
		return
	}
	products, err := h.catalog.AllCategoryProducts(r.Context(), id, filters.FromQuery(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resources, err := h.productResources(r.Context(), products)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, listResponse[productResource]{Data: resources})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.ListProducts(r.Context(), filters.FromQuery(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeProductPage(w, r, env)
}

func (h *Handler) listIngredients(w http.ResponseWriter, r *http.Request) {
	env, err := h.catalog.ListIngredients(r.Context(), filters.FromQuery(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, newPage(r, env, toIngredientResource))
}

func (h *Handler) writeProductPage(w http.ResponseWriter, r *http.Request, env domain.PaginationEnvelope[domain.Product]) {
	ingredients, err := h.catalog.IngredientsForProducts(r.Context(), productIDs(env.Data))
	if err != nil {
		h.fail(w, r, fmt.Errorf("failed to load product ingredients: %w", err))
		return
	}
	h.writeJSON(w, r, http.StatusOK, newPage(r, env, func(p domain.Product) productResource {
		return toProductResource(p, ingredients[p.ID])
	}))
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	writeJSON(w, r, h.logger, status, payload)
}

func (h *Handler) productResources(ctx context.Context, products []domain.Product) ([]productResource, error) {
	ingredients, err := h.catalog.IngredientsForProducts(ctx, productIDs(products))
	if err != nil {
		return nil, fmt.Errorf("failed to load product ingredients: %w", err)
	}
	out := make([]productResource, len(products))
	for i, p := range products {
		out[i] = toProductResource(p, ingredients[p.ID])
	}
	return out, nil
}

func productIDs(products []domain.Product) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func categoryID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, ParamCategory), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
