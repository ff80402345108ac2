package memory

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rpattn/barmenu/internal/domain"
)

func mustSort(t *testing.T, column string, direction domain.SortDirection, resource domain.Resource) domain.SortSpec {
	t.Helper()
	spec, err := domain.NewSortSpec(column, direction, resource.Columns)
	if err != nil {
		t.Fatalf("sort spec: %v", err)
	}
	return spec
}

func TestQueryBreaksTiesByID(t *testing.T) {
	store := NewStore()
	for _, slug := range []string{"c", "a", "b"} {
		store.AddCategory(domain.Category{Name: "Same", Slug: slug, SortOrder: 1})
	}
	repos := store.Repositories()

	for _, dir := range []domain.SortDirection{domain.SortDirectionAsc, domain.SortDirectionDesc} {
		result, err := repos.Categories.Query(context.Background(), domain.Scope{}, mustSort(t, domain.ColumnName, dir, domain.CategoryResource()), nil)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		for i, c := range result.Items {
			if c.ID != int64(i+1) {
				t.Fatalf("%s: expected ID order, got %d at %d", dir, c.ID, i)
			}
		}
	}
}

func TestQueryPagesAndCounts(t *testing.T) {
	store := NewStore()
	for i := 0; i < 7; i++ {
		store.AddIngredient(domain.Ingredient{Name: string(rune('g' - i)), Slug: string(rune('a' + i))})
	}
	page, err := domain.NewPageSpec(3, 3)
	if err != nil {
		t.Fatalf("page spec: %v", err)
	}

	result, err := store.Repositories().Ingredients.Query(context.Background(), domain.Scope{}, domain.IngredientResource().DefaultSort(), &page)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if result.Total != 7 || result.LastPage != 3 || len(result.Items) != 1 || result.Items[0].Name != "g" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestQueryPastLastPageIsEmpty(t *testing.T) {
	store := NewStore()
	for i := 0; i < 7; i++ {
		store.AddIngredient(domain.Ingredient{Name: string(rune('a' + i)), Slug: string(rune('a' + i))})
	}

	for _, tc := range []struct{ limit, page int }{
		{3, 4},
		{10, 1844674407370955162},
		{100, math.MaxInt},
		{1, math.MaxInt},
	} {
		page, err := domain.NewPageSpec(tc.limit, tc.page)
		if err != nil {
			t.Fatalf("page spec: %v", err)
		}
		result, err := store.Repositories().Ingredients.Query(context.Background(), domain.Scope{}, domain.IngredientResource().DefaultSort(), &page)
		if err != nil {
			t.Fatalf("limit %d page %d: %v", tc.limit, tc.page, err)
		}
		if len(result.Items) != 0 || result.Total != 7 || result.CurrentPage != tc.page || result.HasMorePages {
			t.Fatalf("limit %d page %d: unexpected result %+v", tc.limit, tc.page, result)
		}
	}
}

func TestCategoryScopedProducts(t *testing.T) {
	store := NewStore()
	beers := store.AddCategory(domain.Category{Name: "Beers", Slug: "beers"})
	wines := store.AddCategory(domain.Category{Name: "Wines", Slug: "wines"})
	ipa := store.AddProduct(domain.Product{Name: "IPA", Slug: "ipa"})
	merlot := store.AddProduct(domain.Product{Name: "Merlot", Slug: "merlot"})
	store.AttachProduct(beers.ID, ipa.ID, 1)
	store.AttachProduct(wines.ID, merlot.ID, 1)

	result, err := store.Repositories().Products.Query(context.Background(), domain.CategoryScope(beers.ID), domain.ProductResource().DefaultSort(), nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != ipa.ID {
		t.Fatalf("unexpected products %+v", result.Items)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	_, err := NewStore().Repositories().Categories.GetByID(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQueryRejectsForeignScope(t *testing.T) {
	_, err := NewStore().Repositories().Ingredients.Query(context.Background(), domain.CategoryScope(1), domain.IngredientResource().DefaultSort(), nil)
	if err == nil {
		t.Fatalf("expected scope error")
	}
}

func TestDetachedIngredientsAreHidden(t *testing.T) {
	store := NewStore()
	mojito := store.AddProduct(domain.Product{Name: "Mojito", Slug: "mojito"})
	mint := store.AddIngredient(domain.Ingredient{Name: "Mint", Slug: "mint"})
	rum := store.AddIngredient(domain.Ingredient{Name: "Rum", Slug: "rum"})
	store.AttachIngredient(mojito.ID, mint.ID, domain.IngredientTypeOptional)
	store.AttachIngredient(mojito.ID, rum.ID, domain.IngredientTypeBase)

	if !store.DetachIngredient(mojito.ID, mint.ID) {
		t.Fatalf("expected a live link to detach")
	}
	if store.DetachIngredient(mojito.ID, mint.ID) {
		t.Fatalf("detaching twice must report no live link")
	}
	repos := store.Repositories()

	ingredients, err := repos.Ingredients.ListByProductIDs(context.Background(), []int64{mojito.ID})
	if err != nil {
		t.Fatalf("ingredients: %v", err)
	}
	if got := ingredients[mojito.ID]; len(got) != 1 || got[0].ID != rum.ID {
		t.Fatalf("unexpected ingredients %+v", got)
	}

	products, err := repos.Products.ListByIngredientIDs(context.Background(), []int64{mint.ID, rum.ID})
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if len(products[mint.ID]) != 0 {
		t.Fatalf("detached ingredient still lists products %+v", products[mint.ID])
	}
	if got := products[rum.ID]; len(got) != 1 || got[0].ID != mojito.ID {
		t.Fatalf("unexpected products %+v", got)
	}

	// The ingredient itself stays live.
	all, err := repos.Ingredients.Query(context.Background(), domain.Scope{}, domain.IngredientResource().DefaultSort(), nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("expected 2 ingredients, got %d", all.Total)
	}
}
