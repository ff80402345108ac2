package graphql

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/rpattn/barmenu/internal/domain"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseID accepts the decimal IDs this schema hands out, given as a string
// or an integer literal.
func parseID(raw any) (int64, bool) {
	var id int64
	switch v := raw.(type) {
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		id = parsed
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return 0, false
		}
		id = parsed
	case int64:
		id = v
	case int:
		id = int64(v)
	default:
		return 0, false
	}
	return id, id > 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func convertPaginatorInfo(m domain.PaginationMeta) *PaginatorInfo {
	return &PaginatorInfo{
		Count:        m.Count,
		CurrentPage:  m.CurrentPage,
		FirstItem:    m.FirstItem,
		HasMorePages: m.HasMorePages,
		LastItem:     m.LastItem,
		LastPage:     m.LastPage,
		PerPage:      m.PerPage,
		Total:        m.Total,
	}
}

func convertCategoryToGraph(c domain.Category) *Category {
	return &Category{
		ID:          formatID(c.ID),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
		key:         c.ID,
	}
}

func convertProductToGraph(p domain.Product) *Product {
	return &Product{
		ID:           formatID(p.ID),
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		PriceInCents: p.PriceInCents,
		SortOrder:    p.SortOrder,
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
		key:          p.ID,
	}
}

func convertIngredientToGraph(i domain.Ingredient) *Ingredient {
	return &Ingredient{
		ID:          formatID(i.ID),
		Name:        i.Name,
		Slug:        i.Slug,
		Description: i.Description,
		CreatedAt:   formatTime(i.CreatedAt),
		UpdatedAt:   formatTime(i.UpdatedAt),
		key:         i.ID,
	}
}

func convertProductIngredientToGraph(pi domain.ProductIngredient) *Ingredient {
	out := convertIngredientToGraph(pi.Ingredient)
	kind := string(pi.Type)
	out.Type = &kind
	return out
}

func convertAll[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
