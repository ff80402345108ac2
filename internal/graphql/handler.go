package graphql

import (
	"context"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	"github.com/rpattn/barmenu/internal/middleware"
	"github.com/rpattn/barmenu/pkg/logger"
)

const (
	queryCacheSize     = 1000
	persistedQuerySize = 100
)

// NewHandler serves the resolvers of r over GET and POST. Document and
// variable errors are answered with 422; resolver errors come back with 200
// next to whatever data could be resolved.
func NewHandler(r *Resolver) (*handler.Server, error) {
	es, err := NewExecutableSchema(r)
	if err != nil {
		return nil, err
	}

	srv := handler.New(es)
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})

	srv.SetQueryCache(lru.New[*ast.QueryDocument](queryCacheSize))

	srv.Use(extension.Introspection{})
	srv.Use(extension.AutomaticPersistedQuery{
		Cache: lru.New[string](persistedQuerySize),
	})
	srv.Use(strictNumericVariables{schema: es.Schema()})
	srv.Use(&middleware.ResolverLoggerExtension{Logger: r.logger})

	srv.SetErrorPresenter(r.presentError)
	srv.SetRecoverFunc(r.recoverPanic)
	return srv, nil
}

func (r *Resolver) recoverPanic(ctx context.Context, err any) error {
	logger.FromContext(ctx, r.logger).Error("graphql resolver panicked",
		zap.Any("panic", err),
		zap.Stack("stack"),
	)
	return &gqlerror.Error{
		Message:    "internal server error",
		Extensions: map[string]any{"category": CategoryInternal},
	}
}
