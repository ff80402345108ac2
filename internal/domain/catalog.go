package domain

import (
	"fmt"
	"time"
)

// Sortable is implemented by catalog records so generic stores can order them
// by an allow-listed column name.
type Sortable interface {
	Identity() int64
	FieldValue(column string) (any, bool)
}

// Category groups products on the menu.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c Category) Identity() int64 { return c.ID }

func (c Category) FieldValue(column string) (any, bool) {
	switch column {
	case ColumnSortOrder:
		return c.SortOrder, true
	case ColumnSlug:
		return c.Slug, true
	case ColumnCreatedAt:
		return c.CreatedAt, true
	case ColumnName:
		return c.Name, true
	}
	return nil, false
}

// Product is a sellable menu item. Soft-deleted products have DeletedAt set.
type Product struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  *string    `json:"description"`
	PriceInCents int64      `json:"price_in_cents"`
	SortOrder    int        `json:"sort_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

func (p Product) Identity() int64 { return p.ID }

func (p Product) FieldValue(column string) (any, bool) {
	switch column {
	case ColumnSortOrder:
		return p.SortOrder, true
	case ColumnSlug:
		return p.Slug, true
	case ColumnCreatedAt:
		return p.CreatedAt, true
	case ColumnName:
		return p.Name, true
	case ColumnPriceInCents:
		return p.PriceInCents, true
	}
	return nil, false
}

// Ingredient is a component of one or more products.
type Ingredient struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func (i Ingredient) Identity() int64 { return i.ID }

func (i Ingredient) FieldValue(column string) (any, bool) {
	switch column {
	case ColumnSlug:
		return i.Slug, true
	case ColumnCreatedAt:
		return i.CreatedAt, true
	case ColumnName:
		return i.Name, true
	}
	return nil, false
}

// IngredientType is the role an ingredient plays in a product.
type IngredientType string

const (
	IngredientTypeBase     IngredientType = "base"
	IngredientTypeOptional IngredientType = "optional"
	IngredientTypeAddOn    IngredientType = "add-on"
)

// ParseIngredientType validates a stored pivot value.
func ParseIngredientType(raw string) (IngredientType, error) {
	switch t := IngredientType(raw); t {
	case IngredientTypeBase, IngredientTypeOptional, IngredientTypeAddOn:
		return t, nil
	}
	return "", fmt.Errorf("unknown ingredient type %q", raw)
}

// ProductIngredient is an ingredient as seen through one product.
type ProductIngredient struct {
	Ingredient
	Type IngredientType `json:"type"`
}
