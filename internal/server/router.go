// Package server assembles the HTTP surface: REST under /api/v1, GraphQL on
// /query with its playground, and Prometheus metrics.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/rpattn/barmenu/internal/catalog"
	"github.com/rpattn/barmenu/internal/graphql"
	"github.com/rpattn/barmenu/internal/middleware"
	"github.com/rpattn/barmenu/internal/rest"
)

// Route paths.
const (
	PathAPI        = "/api/v1"
	PathQuery      = "/query"
	PathPlayground = "/playground"
	PathMetrics    = "/metrics"
)

// Options configures NewRouter.
type Options struct {
	Logger      *zap.Logger
	CORSOrigins []string
	// Registry receives the HTTP collectors and backs /metrics. A fresh
	// registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter wires the catalog into both protocols behind the shared
// middleware stack.
func NewRouter(svc *catalog.Service, opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	gqlHandler, err := graphql.NewHandler(graphql.NewResolver(svc, log))
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
	})

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.LoggingMiddleware(log),
		middleware.Recover(log),
		middleware.NewMetrics(reg).Middleware(),
		corsHandler.Handler,
	)

	r.Get("/", hello)
	r.Mount(PathAPI, rest.NewHandler(svc, log).Routes())
	r.Handle(PathQuery, middleware.DataLoaderMiddleware(svc)(gqlHandler))
	r.Handle(PathPlayground, playground.Handler("GraphQL playground", PathQuery))
	r.Handle(PathMetrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r, nil
}

func hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Hello, World!"})
}
