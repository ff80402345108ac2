// Package entityloader batches relation lookups made while resolving one
// GraphQL request.
package entityloader

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/graph-gophers/dataloader"

	"github.com/rpattn/barmenu/internal/domain"
)

// RelationSource loads the relations of many records in one call.
type RelationSource interface {
	IngredientsForProducts(ctx context.Context, productIDs []int64) (map[int64][]domain.ProductIngredient, error)
	CategoriesForProducts(ctx context.Context, productIDs []int64) (map[int64][]domain.Category, error)
	ProductsForIngredients(ctx context.Context, ingredientIDs []int64) (map[int64][]domain.Product, error)
}

// Loaders holds the per-request relation loaders.
type Loaders struct {
	ingredientsByProduct *dataloader.Loader
	categoriesByProduct  *dataloader.Loader
	productsByIngredient *dataloader.Loader
}

const batchWait = 2 * time.Millisecond

func NewLoaders(src RelationSource) *Loaders {
	return &Loaders{
		ingredientsByProduct: dataloader.NewBatchedLoader(batchBy(src.IngredientsForProducts), dataloader.WithWait(batchWait)),
		categoriesByProduct:  dataloader.NewBatchedLoader(batchBy(src.CategoriesForProducts), dataloader.WithWait(batchWait)),
		productsByIngredient: dataloader.NewBatchedLoader(batchBy(src.ProductsForIngredients), dataloader.WithWait(batchWait)),
	}
}

// IngredientsOf returns the ingredients of one product.
func (l *Loaders) IngredientsOf(ctx context.Context, productID int64) ([]domain.ProductIngredient, error) {
	return load[domain.ProductIngredient](ctx, l.ingredientsByProduct, productID)
}

// CategoriesOf returns the categories a product is listed in.
func (l *Loaders) CategoriesOf(ctx context.Context, productID int64) ([]domain.Category, error) {
	return load[domain.Category](ctx, l.categoriesByProduct, productID)
}

// ProductsWith returns the products using one ingredient.
func (l *Loaders) ProductsWith(ctx context.Context, ingredientID int64) ([]domain.Product, error) {
	return load[domain.Product](ctx, l.productsByIngredient, ingredientID)
}

func key(id int64) dataloader.Key {
	return dataloader.StringKey(strconv.FormatInt(id, 10))
}

func load[T any](ctx context.Context, loader *dataloader.Loader, id int64) ([]T, error) {
	data, err := loader.Load(ctx, key(id))()
	if err != nil {
		return nil, err
	}
	items, ok := data.([]T)
	if !ok {
		return nil, fmt.Errorf("unexpected loader result %T", data)
	}
	return items, nil
}

func batchBy[T any](fetch func(context.Context, []int64) (map[int64][]T, error)) dataloader.BatchFunc {
	return func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		results := make([]*dataloader.Result, len(keys))
		fail := func(err error) []*dataloader.Result {
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}

		ids := make([]int64, len(keys))
		for i, k := range keys {
			id, err := strconv.ParseInt(k.String(), 10, 64)
			if err != nil {
				return fail(fmt.Errorf("invalid key %q: %w", k.String(), err))
			}
			ids[i] = id
		}

		grouped, err := fetch(ctx, ids)
		if err != nil {
			return fail(err)
		}

		for i, id := range ids {
			items := grouped[id]
			if items == nil {
				items = []T{}
			}
			results[i] = &dataloader.Result{Data: items}
		}
		return results
	}
}
