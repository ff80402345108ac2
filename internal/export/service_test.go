package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rpattn/barmenu/internal/catalog"
	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/filters"
	"github.com/rpattn/barmenu/internal/repository/memory"
	"github.com/rpattn/barmenu/internal/seed"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, seed.Memory(store, seed.DemoMenu()))
	svc := NewService(catalog.NewService(store.Repositories()))
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func sortBy(column, direction string) filters.Raw {
	return filters.FromQuery(url.Values{filters.FieldSortBy: {column}, filters.FieldSortOrder: {direction}})
}

func TestCategoryProductsWorkbook(t *testing.T) {
	svc := newTestService(t)

	file, err := svc.CategoryProducts(context.Background(), 1, sortBy("price_in_cents", "desc"), FormatXLSX)
	require.NoError(t, err)
	assert.Equal(t, "cocktails-products.xlsx", file.Name)
	assert.Equal(t, 4, file.Rows)

	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	require.Equal(t, []string{"Cocktails"}, sheets)
	rows, err := f.GetRows(sheets[0])
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, productColumns, rows[0])

	var slugs []string
	for _, row := range rows[1:] {
		slugs = append(slugs, row[2])
	}
	assert.Equal(t, []string{"martini", "old-fashioned", "mojito", "margarita"}, slugs)
	assert.Equal(t, "1400", rows[1][4])
	assert.Equal(t, "Gin (base), Olive (optional), Vermouth (base)", rows[1][6])
}

func TestCategoryProductsCSV(t *testing.T) {
	svc := newTestService(t)

	file, err := svc.CategoryProducts(context.Background(), 2, filters.Raw{}, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "beers-products.csv", file.Name)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "heineken", records[1][2])
	assert.Equal(t, "", records[1][6])
	assert.Equal(t, "Lime Wedge (optional)", records[2][6])
}

func TestCategoryProductsErrors(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CategoryProducts(context.Background(), 999, filters.Raw{}, FormatXLSX)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = svc.CategoryProducts(context.Background(), 1, sortBy("colour", "asc"), FormatXLSX)
	verr, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, "The sortBy field must be one of the following: sort_order, slug, created_at, name, price_in_cents.", verr.FirstMessage())
}

func TestHTTPHandlerServesAttachment(t *testing.T) {
	var reported error
	h := NewHTTPHandler(newTestService(t), func(w http.ResponseWriter, _ *http.Request, err error) {
		reported = err
		w.WriteHeader(http.StatusTeapot)
	})
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/categories/{category}/products/export.{format}", h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/1/products/export.csv?sortBy=slug", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="cocktails-products.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "margarita")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/1/products/export.pdf", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/42/products/export.xlsx", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, errors.Is(reported, domain.ErrNotFound))
}

func TestSheetNameAndFileComponent(t *testing.T) {
	assert.Equal(t, "Soft Drinks", sheetName("Soft Drinks"))
	assert.Equal(t, "Products", sheetName(" [*] "))
	assert.Len(t, []rune(sheetName("An extremely long category name for a sheet")), maxSheetName)
	assert.Equal(t, "soft-drinks", sanitizeFileComponent("Soft Drinks"))
	assert.Equal(t, "category", sanitizeFileComponent("***"))
}
