package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/barmenu/internal/catalog"
	"github.com/rpattn/barmenu/internal/middleware"
	"github.com/rpattn/barmenu/internal/repository/memory"
	"github.com/rpattn/barmenu/internal/seed"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, seed.Memory(store, seed.DemoMenu()))
	h, err := NewRouter(catalog.NewService(store.Repositories()), Options{
		CORSOrigins: []string{"http://localhost:3000"},
		Registry:    prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	return h
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHelloAndRequestID(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello, World!"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "abc-123")
	rec = do(h, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.HeaderRequestID))
}

// Both protocols must describe the same page of the same listing identically.
func TestRESTAndGraphQLAgreeOnPagination(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=4&page=2&sortBy=name&sortOrder=asc", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var restBody struct {
		Data []struct {
			Slug string `json:"slug"`
		} `json:"data"`
		Meta struct {
			Count        int  `json:"count"`
			CurrentPage  int  `json:"current_page"`
			FirstItem    *int `json:"first_item"`
			LastItem     *int `json:"last_item"`
			HasMorePages bool `json:"has_more_pages"`
			LastPage     int  `json:"last_page"`
			PerPage      int  `json:"per_page"`
			Total        int  `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restBody))

	query := `{"query":"{ products(first: 4, page: 2, orderBy: {column: \"name\", order: ASC}) { data { slug } paginatorInfo { count currentPage firstItem lastItem hasMorePages lastPage perPage total } } }"}`
	req := httptest.NewRequest(http.MethodPost, PathQuery, strings.NewReader(query))
	req.Header.Set("Content-Type", "application/json")
	rec = do(h, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var gqlBody struct {
		Data struct {
			Products struct {
				Data []struct {
					Slug string `json:"slug"`
				} `json:"data"`
				PaginatorInfo struct {
					Count        int  `json:"count"`
					CurrentPage  int  `json:"currentPage"`
					FirstItem    *int `json:"firstItem"`
					LastItem     *int `json:"lastItem"`
					HasMorePages bool `json:"hasMorePages"`
					LastPage     int  `json:"lastPage"`
					PerPage      int  `json:"perPage"`
					Total        int  `json:"total"`
				} `json:"paginatorInfo"`
			} `json:"products"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gqlBody))
	require.Empty(t, gqlBody.Errors)

	info := gqlBody.Data.Products.PaginatorInfo
	assert.Equal(t, restBody.Meta.Count, info.Count)
	assert.Equal(t, restBody.Meta.CurrentPage, info.CurrentPage)
	assert.Equal(t, restBody.Meta.FirstItem, info.FirstItem)
	assert.Equal(t, restBody.Meta.LastItem, info.LastItem)
	assert.Equal(t, restBody.Meta.HasMorePages, info.HasMorePages)
	assert.Equal(t, restBody.Meta.LastPage, info.LastPage)
	assert.Equal(t, restBody.Meta.PerPage, info.PerPage)
	assert.Equal(t, restBody.Meta.Total, info.Total)
	assert.Equal(t, 15, info.Total)
	assert.Equal(t, 4, info.LastPage)

	require.Len(t, gqlBody.Data.Products.Data, len(restBody.Data))
	for i := range restBody.Data {
		assert.Equal(t, restBody.Data[i].Slug, gqlBody.Data.Products.Data[i].Slug)
	}
}

func TestValidationMessagesMatchAcrossProtocols(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/v1/categories?limit=101", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var restErr struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restErr))

	req := httptest.NewRequest(http.MethodPost, PathQuery, strings.NewReader(`{"query":"{ categories(first: 101) { data { id } } }"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = do(h, req)
	var gqlErr struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gqlErr))
	require.Len(t, gqlErr.Errors, 1)

	assert.Equal(t, "The limit field must be less than 100.", restErr.Message)
	assert.Equal(t, "The first field must be less than 100.", gqlErr.Errors[0].Message)
}

func TestPlaygroundAndMetrics(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, httptest.NewRequest(http.MethodGet, PathPlayground, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "GraphQL playground")

	require.Equal(t, http.StatusOK, do(h, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)).Code)

	rec = do(h, httptest.NewRequest(http.MethodGet, PathMetrics, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `barmenu_http_requests_total{method="GET",route="/api/v1/products",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, PathQuery, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := do(h, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, PathQuery, nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = do(h, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
