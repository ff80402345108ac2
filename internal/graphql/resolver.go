package graphql

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/entityloader"
	"github.com/rpattn/barmenu/internal/filters"
	"github.com/rpattn/barmenu/internal/middleware"
)

// CatalogService is the part of the catalog the resolvers read from.
type CatalogService interface {
	ListCategories(ctx context.Context, raw filters.Raw) (domain.PaginationEnvelope[domain.Category], error)
	ListProducts(ctx context.Context, raw filters.Raw) (domain.PaginationEnvelope[domain.Product], error)
	ListIngredients(ctx context.Context, raw filters.Raw) (domain.PaginationEnvelope[domain.Ingredient], error)
	ListCategoryProducts(ctx context.Context, categoryID int64, raw filters.Raw) (domain.PaginationEnvelope[domain.Product], error)
	AllCategoryProducts(ctx context.Context, categoryID int64, raw filters.Raw) ([]domain.Product, error)
	Category(ctx context.Context, id int64) (domain.Category, error)
	entityloader.RelationSource
}

// Resolver handles GraphQL queries
type Resolver struct {
	catalog CatalogService
	logger  *zap.Logger
}

// NewResolver creates a new GraphQL resolver
func NewResolver(catalog CatalogService, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{catalog: catalog, logger: logger}
}

// NewExecutableSchema loads the schema and registers the resolvers of r.
func NewExecutableSchema(r *Resolver) (*ExecutableSchema, error) {
	schema, err := LoadSchema()
	if err != nil {
		return nil, err
	}
	es := newSchema(schema)

	es.resolve("Query", "categories", r.categories)
	es.resolve("Query", "category", r.category)
	es.resolve("Query", "products", r.products)
	es.resolve("Query", "ingredients", r.ingredients)

	es.resolve("Category", "products", r.categoryProducts)
	es.resolve("Category", "categoryProducts", r.allCategoryProducts)
	es.resolve("Product", "categories", r.productCategories)
	es.resolve("Product", "ingredients", r.productIngredients)
	es.resolve("Ingredient", "products", r.ingredientProducts)
	return es, nil
}

// Query resolvers

func (r *Resolver) categories(ctx context.Context, _ any, args map[string]any) (any, error) {
	env, err := r.catalog.ListCategories(ctx, filters.FromGraphQLArgs(args))
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return &CategoryPaginator{
		Data:          convertAll(env.Data, convertCategoryToGraph),
		PaginatorInfo: convertPaginatorInfo(env.Meta),
	}, nil
}

// category returns null for unknown or malformed IDs.
func (r *Resolver) category(ctx context.Context, _ any, args map[string]any) (any, error) {
	id, ok := parseID(args["id"])
	if !ok {
		return nil, nil
	}
	c, err := r.catalog.Category(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return convertCategoryToGraph(c), nil
}

func (r *Resolver) products(ctx context.Context, _ any, args map[string]any) (any, error) {
	env, err := r.catalog.ListProducts(ctx, filters.FromGraphQLArgs(args))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return &ProductPaginator{
		Data:          convertAll(env.Data, convertProductToGraph),
		PaginatorInfo: convertPaginatorInfo(env.Meta),
	}, nil
}

func (r *Resolver) ingredients(ctx context.Context, _ any, args map[string]any) (any, error) {
	env, err := r.catalog.ListIngredients(ctx, filters.FromGraphQLArgs(args))
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return &IngredientPaginator{
		Data:          convertAll(env.Data, convertIngredientToGraph),
		PaginatorInfo: convertPaginatorInfo(env.Meta),
	}, nil
}

// Category resolvers

func (r *Resolver) categoryProducts(ctx context.Context, obj any, args map[string]any) (any, error) {
	c := obj.(*Category)
	env, err := r.catalog.ListCategoryProducts(ctx, c.key, filters.FromGraphQLArgs(args))
	if err != nil {
		return nil, fmt.Errorf("failed to list products of category %s: %w", c.ID, err)
	}
	return &ProductPaginator{
		Data:          convertAll(env.Data, convertProductToGraph),
		PaginatorInfo: convertPaginatorInfo(env.Meta),
	}, nil
}

func (r *Resolver) allCategoryProducts(ctx context.Context, obj any, args map[string]any) (any, error) {
	c := obj.(*Category)
	products, err := r.catalog.AllCategoryProducts(ctx, c.key, filters.FromGraphQLArgs(args))
	if err != nil {
		return nil, fmt.Errorf("failed to list products of category %s: %w", c.ID, err)
	}
	return convertAll(products, convertProductToGraph), nil
}

// Relation resolvers use the request loaders when the dataloader middleware
// attached them and fall back to a single-key lookup otherwise.

func (r *Resolver) productCategories(ctx context.Context, obj any, _ map[string]any) (any, error) {
	p := obj.(*Product)
	var (
		categories []domain.Category
		err        error
	)
	if loaders := middleware.LoadersFromContext(ctx); loaders != nil {
		categories, err = loaders.CategoriesOf(ctx, p.key)
	} else {
		categories, err = lookupOne(ctx, r.catalog.CategoriesForProducts, p.key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load categories of product %s: %w", p.ID, err)
	}
	return convertAll(categories, convertCategoryToGraph), nil
}

func (r *Resolver) productIngredients(ctx context.Context, obj any, _ map[string]any) (any, error) {
	p := obj.(*Product)
	var (
		ingredients []domain.ProductIngredient
		err         error
	)
	if loaders := middleware.LoadersFromContext(ctx); loaders != nil {
		ingredients, err = loaders.IngredientsOf(ctx, p.key)
	} else {
		ingredients, err = lookupOne(ctx, r.catalog.IngredientsForProducts, p.key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients of product %s: %w", p.ID, err)
	}
	return convertAll(ingredients, convertProductIngredientToGraph), nil
}

func (r *Resolver) ingredientProducts(ctx context.Context, obj any, _ map[string]any) (any, error) {
	i := obj.(*Ingredient)
	var (
		products []domain.Product
		err      error
	)
	if loaders := middleware.LoadersFromContext(ctx); loaders != nil {
		products, err = loaders.ProductsWith(ctx, i.key)
	} else {
		products, err = lookupOne(ctx, r.catalog.ProductsForIngredients, i.key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load products of ingredient %s: %w", i.ID, err)
	}
	return convertAll(products, convertProductToGraph), nil
}

func lookupOne[T any](ctx context.Context, fetch func(context.Context, []int64) (map[int64][]T, error), id int64) ([]T, error) {
	byID, err := fetch(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return byID[id], nil
}
