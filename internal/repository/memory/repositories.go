package memory

import (
	"context"
	"fmt"

	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/repository"
)

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Categories:  &categoryRepository{store: s},
		Products:    &productRepository{store: s},
		Ingredients: &ingredientRepository{store: s},
	}
}

func unsupportedScope(resource string, scope domain.Scope) error {
	return fmt.Errorf("%s cannot be scoped by %q", resource, scope.Parent)
}

type categoryRepository struct {
	store *Store
}

func (r *categoryRepository) Query(ctx context.Context, scope domain.Scope, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[domain.Category], error) {
	if err := ctx.Err(); err != nil {
		return domain.PagedResult[domain.Category]{}, err
	}
	if !scope.IsZero() {
		return domain.PagedResult[domain.Category]{}, unsupportedScope("categories", scope)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortAndPage(r.store.categories, sort, page)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, c := range r.store.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Category{}, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
}

func (r *categoryRepository) ListByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byID := make(map[int64]domain.Category, len(r.store.categories))
	for _, c := range r.store.categories {
		byID[c.ID] = c
	}
	wanted := idSet(productIDs)

	grouped := make(map[int64][]domain.Category, len(productIDs))
	for _, link := range r.store.categoryProducts {
		if _, ok := wanted[link.productID]; !ok {
			continue
		}
		if c, ok := byID[link.categoryID]; ok {
			grouped[link.productID] = append(grouped[link.productID], c)
		}
	}
	for id, categories := range grouped {
		sorted, err := sortAndPage(categories, domain.CategoryResource().DefaultSort(), nil)
		if err != nil {
			return nil, err
		}
		grouped[id] = sorted.Items
	}
	return grouped, nil
}

type productRepository struct {
	store *Store
}

func (r *productRepository) Query(ctx context.Context, scope domain.Scope, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[domain.Product], error) {
	if err := ctx.Err(); err != nil {
		return domain.PagedResult[domain.Product]{}, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var products []domain.Product
	switch scope.Parent {
	case "":
		products = r.store.liveProducts(nil)
	case domain.ScopeParentCategory:
		members := make(map[int64]struct{})
		for _, link := range r.store.categoryProducts {
			if link.categoryID == scope.ParentID {
				members[link.productID] = struct{}{}
			}
		}
		products = r.store.liveProducts(members)
	default:
		return domain.PagedResult[domain.Product]{}, unsupportedScope("products", scope)
	}
	return sortAndPage(products, sort, page)
}

func (r *productRepository) ListByIngredientIDs(ctx context.Context, ingredientIDs []int64) (map[int64][]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byID := make(map[int64]domain.Product, len(r.store.products))
	for _, p := range r.store.liveProducts(nil) {
		byID[p.ID] = p
	}
	wanted := idSet(ingredientIDs)

	grouped := make(map[int64][]domain.Product, len(ingredientIDs))
	for _, link := range r.store.productIngredients {
		if _, ok := wanted[link.ingredientID]; !ok || link.deletedAt != nil {
			continue
		}
		if p, ok := byID[link.productID]; ok {
			grouped[link.ingredientID] = append(grouped[link.ingredientID], p)
		}
	}
	for id, products := range grouped {
		sorted, err := sortAndPage(products, domain.ProductResource().DefaultSort(), nil)
		if err != nil {
			return nil, err
		}
		grouped[id] = sorted.Items
	}
	return grouped, nil
}

// liveProducts returns products that are not soft-deleted, optionally
// restricted to the given IDs. Callers hold the read lock.
func (s *Store) liveProducts(only map[int64]struct{}) []domain.Product {
	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.DeletedAt != nil {
			continue
		}
		if only != nil {
			if _, ok := only[p.ID]; !ok {
				continue
			}
		}
		products = append(products, p)
	}
	return products
}

type ingredientRepository struct {
	store *Store
}

func (r *ingredientRepository) Query(ctx context.Context, scope domain.Scope, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[domain.Ingredient], error) {
	if err := ctx.Err(); err != nil {
		return domain.PagedResult[domain.Ingredient]{}, err
	}
	if !scope.IsZero() {
		return domain.PagedResult[domain.Ingredient]{}, unsupportedScope("ingredients", scope)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	live := make([]domain.Ingredient, 0, len(r.store.ingredients))
	for _, i := range r.store.ingredients {
		if i.DeletedAt == nil {
			live = append(live, i)
		}
	}
	return sortAndPage(live, sort, page)
}

func (r *ingredientRepository) ListByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]domain.ProductIngredient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byID := make(map[int64]domain.Ingredient, len(r.store.ingredients))
	for _, i := range r.store.ingredients {
		if i.DeletedAt == nil {
			byID[i.ID] = i
		}
	}
	wanted := idSet(productIDs)

	grouped := make(map[int64][]domain.ProductIngredient, len(productIDs))
	for _, link := range r.store.productIngredients {
		if _, ok := wanted[link.productID]; !ok || link.deletedAt != nil {
			continue
		}
		if i, ok := byID[link.ingredientID]; ok {
			grouped[link.productID] = append(grouped[link.productID], domain.ProductIngredient{Ingredient: i, Type: link.kind})
		}
	}
	for id, ingredients := range grouped {
		sorted, err := sortAndPage(ingredients, domain.IngredientResource().DefaultSort(), nil)
		if err != nil {
			return nil, err
		}
		grouped[id] = sorted.Items
	}
	return grouped, nil
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
