package rest

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/filters"
)

type categoryResource struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sort_order"`
}

type ingredientResource struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Type        string  `json:"type,omitempty"`
}

type productResource struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Slug         string               `json:"slug"`
	Description  *string              `json:"description"`
	PriceInCents int64                `json:"price_in_cents"`
	SortOrder    int                  `json:"sort_order"`
	Ingredients  []ingredientResource `json:"ingredients"`
}

func toCategoryResource(c domain.Category) categoryResource {
	return categoryResource{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		SortOrder:   c.SortOrder,
	}
}

func toIngredientResource(i domain.Ingredient) ingredientResource {
	return ingredientResource{
		ID:          i.ID,
		Name:        i.Name,
		Slug:        i.Slug,
		Description: i.Description,
	}
}

func toProductResource(p domain.Product, ingredients []domain.ProductIngredient) productResource {
	out := productResource{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		PriceInCents: p.PriceInCents,
		SortOrder:    p.SortOrder,
		Ingredients:  make([]ingredientResource, len(ingredients)),
	}
	for i, ing := range ingredients {
		res := toIngredientResource(ing.Ingredient)
		res.Type = string(ing.Type)
		out.Ingredients[i] = res
	}
	return out
}

type itemResponse[T any] struct {
	Data T `json:"data"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

type pageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

type pageMeta struct {
	Count        int  `json:"count"`
	CurrentPage  int  `json:"current_page"`
	FirstItem    *int `json:"first_item"`
	LastItem     *int `json:"last_item"`
	HasMorePages bool `json:"has_more_pages"`
	LastPage     int  `json:"last_page"`
	PerPage      int  `json:"per_page"`
	Total        int  `json:"total"`
}

type pageResponse[T any] struct {
	Data  []T       `json:"data"`
	Links pageLinks `json:"links"`
	Meta  pageMeta  `json:"meta"`
}

func toPageMeta(m domain.PaginationMeta) pageMeta {
	return pageMeta{
		Count:        m.Count,
		CurrentPage:  m.CurrentPage,
		FirstItem:    m.FirstItem,
		LastItem:     m.LastItem,
		HasMorePages: m.HasMorePages,
		LastPage:     m.LastPage,
		PerPage:      m.PerPage,
		Total:        m.Total,
	}
}

// newPage converts an envelope, linking sibling pages of the request URL.
func newPage[T, U any](r *http.Request, env domain.PaginationEnvelope[T], fn func(T) U) pageResponse[U] {
	data := make([]U, len(env.Data))
	for i, item := range env.Data {
		data[i] = fn(item)
	}
	return pageResponse[U]{
		Data:  data,
		Links: pageLinksFor(r, env.Meta),
		Meta:  toPageMeta(env.Meta),
	}
}

func pageLinksFor(r *http.Request, m domain.PaginationMeta) pageLinks {
	links := pageLinks{
		First: pageURL(r, 1),
		Last:  pageURL(r, m.LastPage),
	}
	if m.CurrentPage > 1 {
		prev := pageURL(r, m.CurrentPage-1)
		links.Prev = &prev
	}
	if m.HasMorePages {
		next := pageURL(r, m.CurrentPage+1)
		links.Next = &next
	}
	return links
}

func pageURL(r *http.Request, page int) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	q := r.URL.Query()
	q.Set(filters.FieldPage, strconv.Itoa(page))
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	return u.String()
}
