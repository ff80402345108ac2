package middleware

import (
	"context"
	"net/http"

	"github.com/rpattn/barmenu/internal/entityloader"
)

type ctxKey string

const loadersKey ctxKey = "relationLoaders"

// DataLoaderMiddleware attaches fresh relation loaders to each request context
func DataLoaderMiddleware(src entityloader.RelationSource) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), entityloader.NewLoaders(src))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithLoaders(ctx context.Context, loaders *entityloader.Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}

// LoadersFromContext retrieves the request loaders, nil when none are attached
func LoadersFromContext(ctx context.Context) *entityloader.Loaders {
	if l, ok := ctx.Value(loadersKey).(*entityloader.Loaders); ok {
		return l
	}
	return nil
}
