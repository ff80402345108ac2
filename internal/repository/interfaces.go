package repository

import (
	"context"

	"github.com/rpattn/barmenu/internal/domain"
)

// CategoryRepository defines read access to menu categories
type CategoryRepository interface {
	// Query returns categories ordered by sort. A nil page returns every row.
	Query(ctx context.Context, scope domain.Scope, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[domain.Category], error)
	GetByID(ctx context.Context, id int64) (domain.Category, error)
	ListByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]domain.Category, error)
}

// ProductRepository defines read access to products. Soft-deleted rows are
// never returned.
type ProductRepository interface {
	// Query honours domain.CategoryScope to list the products of one category.
	Query(ctx context.Context, scope domain.Scope, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[domain.Product], error)
	ListByIngredientIDs(ctx context.Context, ingredientIDs []int64) (map[int64][]domain.Product, error)
}

// IngredientRepository defines read access to ingredients
type IngredientRepository interface {
	Query(ctx context.Context, scope domain.Scope, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[domain.Ingredient], error)
	ListByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]domain.ProductIngredient, error)
}

// Repositories bundles the catalog repositories of one storage backend.
type Repositories struct {
	Categories  CategoryRepository
	Products    ProductRepository
	Ingredients IngredientRepository
}
