package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/99designs/gqlgen/graphql/handler"

	"github.com/rpattn/barmenu/internal/catalog"
	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/entityloader"
	"github.com/rpattn/barmenu/internal/middleware"
	"github.com/rpattn/barmenu/internal/repository/memory"
	"github.com/rpattn/barmenu/internal/seed"
)

// countingCatalog counts batched ingredient lookups.
type countingCatalog struct {
	*catalog.Service
	ingredientBatches atomic.Int32
}

func (c *countingCatalog) IngredientsForProducts(ctx context.Context, ids []int64) (map[int64][]domain.ProductIngredient, error) {
	c.ingredientBatches.Add(1)
	return c.Service.IngredientsForProducts(ctx, ids)
}

func newMenuServer(t *testing.T) (*handler.Server, *countingCatalog) {
	t.Helper()
	store := memory.NewStore()
	if err := seed.Memory(store, seed.DemoMenu()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := &countingCatalog{Service: catalog.NewService(store.Repositories())}
	srv, err := NewHandler(NewResolver(svc, nil))
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	return srv, svc
}

// runQuery posts query with fresh relation loaders attached and returns the
// reported errors.
func runQuery(t *testing.T, srv http.Handler, src entityloader.RelationSource, query string, vars map[string]any, out any) []map[string]any {
	t.Helper()
	body, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithLoaders(req.Context(), entityloader.NewLoaders(src)))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var resp struct {
		Data   json.RawMessage  `json:"data"`
		Errors []map[string]any `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %s: %v", rec.Body.String(), err)
	}
	if out != nil && string(resp.Data) != "null" && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			t.Fatalf("decode data %s: %v", resp.Data, err)
		}
	}
	return resp.Errors
}

type paginatorInfo struct {
	Count        int  `json:"count"`
	CurrentPage  int  `json:"currentPage"`
	FirstItem    *int `json:"firstItem"`
	HasMorePages bool `json:"hasMorePages"`
	LastItem     *int `json:"lastItem"`
	LastPage     int  `json:"lastPage"`
	PerPage      int  `json:"perPage"`
	Total        int  `json:"total"`
}

type slugged struct {
	Slug        string    `json:"slug"`
	Type        *string   `json:"type"`
	Ingredients []slugged `json:"ingredients"`
	Products    []slugged `json:"products"`
	Categories  []slugged `json:"categories"`
}

type paginated struct {
	Data          []slugged     `json:"data"`
	PaginatorInfo paginatorInfo `json:"paginatorInfo"`
}

func slugs(items []slugged) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Slug
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCategoriesDefaultPage(t *testing.T) {
	srv, svc := newMenuServer(t)

	var data struct {
		Categories paginated `json:"categories"`
	}
	errs := runQuery(t, srv, svc, `{
		categories {
			data { slug }
			paginatorInfo { count currentPage firstItem hasMorePages lastItem lastPage perPage total }
		}
	}`, nil, &data)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := []string{"cocktails", "beers", "wines", "soft-drinks", "mocktails"}
	if got := slugs(data.Categories.Data); !equalStrings(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	info := data.Categories.PaginatorInfo
	if info.Count != 5 || info.CurrentPage != 1 || info.PerPage != 10 || info.Total != 5 || info.LastPage != 1 || info.HasMorePages {
		t.Fatalf("unexpected paginator info %+v", info)
	}
	if info.FirstItem == nil || *info.FirstItem != 1 || info.LastItem == nil || *info.LastItem != 5 {
		t.Fatalf("unexpected item bounds %+v", info)
	}
}

func TestCategoriesRejectsFirstAboveLimit(t *testing.T) {
	srv, svc := newMenuServer(t)

	errs := runQuery(t, srv, svc, `{ categories(first: 101) { data { id } } }`, nil, nil)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if errs[0]["message"] != "The first field must be less than 100." {
		t.Fatalf("unexpected message %v", errs[0]["message"])
	}
	ext, _ := errs[0]["extensions"].(map[string]any)
	if ext["category"] != CategoryValidation {
		t.Fatalf("expected validation category, got %v", errs[0])
	}
}

func TestCategoriesOrderByAcceptsLiteralAndVariable(t *testing.T) {
	srv, svc := newMenuServer(t)
	want := []string{"wines", "soft-drinks", "mocktails", "cocktails", "beers"}

	var literal struct {
		Categories paginated `json:"categories"`
	}
	errs := runQuery(t, srv, svc, `{ categories(orderBy: {column: "name", order: DESC}) { data { slug } } }`, nil, &literal)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := slugs(literal.Categories.Data); !equalStrings(got, want) {
		t.Fatalf("literal order: expected %v, got %v", want, got)
	}

	var variable struct {
		Categories paginated `json:"categories"`
	}
	errs = runQuery(t, srv, svc,
		`query($orderBy: OrderByClause, $first: Int) { categories(orderBy: $orderBy, first: $first) { data { slug } } }`,
		map[string]any{"orderBy": map[string]any{"column": "name", "order": "desc"}, "first": json.Number("3")},
		&variable)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := slugs(variable.Categories.Data); !equalStrings(got, want[:3]) {
		t.Fatalf("variable order: expected %v, got %v", want[:3], got)
	}
}

func TestCategoriesRejectsUnknownOrder(t *testing.T) {
	srv, svc := newMenuServer(t)

	errs := runQuery(t, srv, svc, `{ categories(orderBy: {column: "colour", order: SIDEWAYS}) { data { id } } }`, nil, nil)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	want := "The orderBy.column field must be one of the following: sort_order, slug, created_at, name."
	if errs[0]["message"] != want {
		t.Fatalf("expected %q, got %v", want, errs[0]["message"])
	}
}

func TestCategoryProductsPaginatedAndSorted(t *testing.T) {
	srv, svc := newMenuServer(t)

	var data struct {
		Category struct {
			Name     string    `json:"name"`
			Page     paginated `json:"page"`
			ByPrice  []slugged `json:"byPrice"`
			Products []slugged `json:"categoryProducts"`
		} `json:"category"`
	}
	errs := runQuery(t, srv, svc, `{
		category(id: "1") {
			name
			page: products(first: 2, page: 2) { data { slug } paginatorInfo { currentPage total lastPage hasMorePages } }
			byPrice: categoryProducts(orderBy: {column: "price_in_cents", order: DESC}) { slug }
			categoryProducts { slug ingredients { slug type } }
		}
	}`, nil, &data)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if data.Category.Name != "Cocktails" {
		t.Fatalf("unexpected category %q", data.Category.Name)
	}
	if got := slugs(data.Category.Page.Data); !equalStrings(got, []string{"martini", "old-fashioned"}) {
		t.Fatalf("unexpected second page %v", got)
	}
	info := data.Category.Page.PaginatorInfo
	if info.CurrentPage != 2 || info.Total != 4 || info.LastPage != 2 || info.HasMorePages {
		t.Fatalf("unexpected paginator info %+v", info)
	}
	if got := slugs(data.Category.ByPrice); !equalStrings(got, []string{"martini", "old-fashioned", "mojito", "margarita"}) {
		t.Fatalf("unexpected price order %v", got)
	}

	margarita := data.Category.Products[1]
	if margarita.Slug != "margarita" || len(margarita.Ingredients) != 4 {
		t.Fatalf("unexpected margarita %+v", margarita)
	}
	types := map[string]string{}
	for _, ing := range margarita.Ingredients {
		if ing.Type == nil {
			t.Fatalf("ingredient %s reached through a product must carry its type", ing.Slug)
		}
		types[ing.Slug] = *ing.Type
	}
	if types["tequila"] != "base" || types["lime-wedge"] != "optional" {
		t.Fatalf("unexpected ingredient types %v", types)
	}
}

func TestCategoryUnknownIDIsNull(t *testing.T) {
	srv, svc := newMenuServer(t)

	var data struct {
		Category *slugged `json:"category"`
	}
	for _, id := range []string{"999", "not-a-number"} {
		errs := runQuery(t, srv, svc, `query($id: ID!) { category(id: $id) { slug } }`, map[string]any{"id": id}, &data)
		if len(errs) > 0 {
			t.Fatalf("id %s: unexpected errors: %v", id, errs)
		}
		if data.Category != nil {
			t.Fatalf("id %s: expected null category, got %+v", id, data.Category)
		}
	}
}

func TestIngredientsListedWithoutTypeAndWithProducts(t *testing.T) {
	srv, svc := newMenuServer(t)

	var data struct {
		Ingredients paginated `json:"ingredients"`
	}
	errs := runQuery(t, srv, svc, `{
		ingredients(first: 50, orderBy: {column: "slug"}) { data { slug type products { slug categories { slug } } } }
	}`, nil, &data)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(data.Ingredients.Data) != 29 {
		t.Fatalf("expected 29 ingredients, got %d", len(data.Ingredients.Data))
	}

	var limeJuice *slugged
	for i := range data.Ingredients.Data {
		item := &data.Ingredients.Data[i]
		if item.Type != nil {
			t.Fatalf("top level ingredient %s must not carry a type", item.Slug)
		}
		if item.Slug == "lime-juice" {
			limeJuice = item
		}
	}
	if limeJuice == nil {
		t.Fatalf("lime-juice not listed")
	}
	got := map[string]string{}
	for _, p := range limeJuice.Products {
		if len(p.Categories) != 1 {
			t.Fatalf("expected one category for %s, got %v", p.Slug, p.Categories)
		}
		got[p.Slug] = p.Categories[0].Slug
	}
	want := map[string]string{"mojito": "cocktails", "margarita": "cocktails", "virgin-mojito": "mocktails"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for slug, category := range want {
		if got[slug] != category {
			t.Fatalf("expected %s in %s, got %v", slug, category, got)
		}
	}
}

func TestProductIngredientsAreBatched(t *testing.T) {
	srv, svc := newMenuServer(t)

	var data struct {
		Products paginated `json:"products"`
	}
	errs := runQuery(t, srv, svc, `{ products(first: 15) { data { slug ingredients { slug } } } }`, nil, &data)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(data.Products.Data) != 15 {
		t.Fatalf("expected 15 products, got %d", len(data.Products.Data))
	}
	if batches := svc.ingredientBatches.Load(); batches == 0 || batches >= 15 {
		t.Fatalf("expected batched ingredient lookups, got %d calls for 15 products", batches)
	}
}

func TestSchemaIntrospection(t *testing.T) {
	srv, svc := newMenuServer(t)

	var data struct {
		Typename string `json:"__typename"`
		Type     struct {
			Kind        string `json:"kind"`
			InputFields []struct {
				Name string `json:"name"`
			} `json:"inputFields"`
		} `json:"__type"`
		Schema struct {
			QueryType struct {
				Name string `json:"name"`
			} `json:"queryType"`
		} `json:"__schema"`
	}
	errs := runQuery(t, srv, svc, `{
		__typename
		__type(name: "OrderByClause") { kind inputFields { name } }
		__schema { queryType { name } }
	}`, nil, &data)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if data.Typename != "Query" || data.Schema.QueryType.Name != "Query" || data.Type.Kind != "INPUT_OBJECT" {
		t.Fatalf("unexpected introspection %+v", data)
	}
	if len(data.Type.InputFields) != 2 || data.Type.InputFields[0].Name != "column" || data.Type.InputFields[1].Name != "order" {
		t.Fatalf("unexpected input fields %+v", data.Type.InputFields)
	}
}
