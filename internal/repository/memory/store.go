// Package memory keeps the catalog in process memory. It backs the "memory"
// storage driver and the HTTP level tests.
package memory

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rpattn/barmenu/internal/domain"
)

type categoryProduct struct {
	categoryID int64
	productID  int64
	sortOrder  int
}

type productIngredient struct {
	productID    int64
	ingredientID int64
	kind         domain.IngredientType
	deletedAt    *time.Time
}

// Store holds categories, products, ingredients and their pivots.
type Store struct {
	mu sync.RWMutex

	categories  []domain.Category
	products    []domain.Product
	ingredients []domain.Ingredient

	categoryProducts   []categoryProduct
	productIngredients []productIngredient

	nextID int64
	now    func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) stamp(id *int64, createdAt, updatedAt *time.Time) {
	if *id == 0 {
		s.nextID++
		*id = s.nextID
	} else if *id > s.nextID {
		s.nextID = *id
	}
	if createdAt.IsZero() {
		*createdAt = s.now().UTC()
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}

// AddCategory stores c, assigning an ID and timestamps when unset.
func (s *Store) AddCategory(c domain.Category) domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	s.categories = append(s.categories, c)
	return c
}

// AddProduct stores p, assigning an ID and timestamps when unset.
func (s *Store) AddProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	s.products = append(s.products, p)
	return p
}

// AddIngredient stores i, assigning an ID and timestamps when unset.
func (s *Store) AddIngredient(i domain.Ingredient) domain.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamp(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	s.ingredients = append(s.ingredients, i)
	return i
}

// AttachProduct places a product in a category.
func (s *Store) AttachProduct(categoryID, productID int64, sortOrder int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryProducts = append(s.categoryProducts, categoryProduct{
		categoryID: categoryID,
		productID:  productID,
		sortOrder:  sortOrder,
	})
}

// AttachIngredient links an ingredient to a product with the given role.
func (s *Store) AttachIngredient(productID, ingredientID int64, kind domain.IngredientType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productIngredients = append(s.productIngredients, productIngredient{
		productID:    productID,
		ingredientID: ingredientID,
		kind:         kind,
	})
}

// DetachIngredient soft-deletes the links between a product and an
// ingredient. It reports whether a live link was found.
func (s *Store) DetachIngredient(productID, ingredientID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	found := false
	for i := range s.productIngredients {
		link := &s.productIngredients[i]
		if link.productID != productID || link.ingredientID != ingredientID || link.deletedAt != nil {
			continue
		}
		link.deletedAt = &now
		found = true
	}
	return found
}

// sortAndPage orders a copy of items by sort, ties broken by ascending ID, and
// cuts the requested page out of it.
func sortAndPage[T domain.Sortable](items []T, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[T], error) {
	sorted := slices.Clone(items)
	column := sort.Column()
	desc := sort.Direction() == domain.SortDirectionDesc

	var cmpErr error
	slices.SortStableFunc(sorted, func(a, b T) int {
		av, aok := a.FieldValue(column)
		bv, bok := b.FieldValue(column)
		if !aok || !bok {
			cmpErr = fmt.Errorf("column %q is not sortable", column)
			return 0
		}
		c, err := compareValues(av, bv)
		if err != nil {
			cmpErr = err
			return 0
		}
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return compareInts(a.Identity(), b.Identity())
	})
	if cmpErr != nil {
		return domain.PagedResult[T]{}, cmpErr
	}

	if page == nil {
		return domain.UnpagedResult(sorted), nil
	}

	total := len(sorted)
	start := max(0, min(page.Offset(), total))
	end := start + max(0, min(page.Limit(), total-start))
	return domain.NewPagedResult(sorted[start:end], total, *page), nil
}

func compareValues(a, b any) (int, error) {
	switch av := a.(type) {
	case int:
		if bv, ok := b.(int); ok {
			return compareInts(int64(av), int64(bv)), nil
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return compareInts(av, bv), nil
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), nil
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), nil
		}
	}
	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
