package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"go.uber.org/zap"

	"github.com/rpattn/barmenu/pkg/logger"
)

// LoggingMiddleware stores a request scoped logger in the context and logs
// every request once it completes.
func LoggingMiddleware(base *zap.Logger) Middleware {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := base
			if id := RequestIDFromContext(r.Context()); id != "" {
				reqLogger = reqLogger.With(zap.String("request_id", id))
			}
			r = r.WithContext(logger.WithContext(r.Context(), reqLogger))

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			reqLogger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rw.statusCode),
				zap.Int("bytes", rw.bytes),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}

// ResolverLoggerExtension logs resolver execution times at debug level on the
// request logger.
type ResolverLoggerExtension struct {
	Logger *zap.Logger
}

var _ interface {
	graphql.HandlerExtension
	graphql.FieldInterceptor
} = (*ResolverLoggerExtension)(nil)

// ExtensionName implements graphql.HandlerExtension
func (r *ResolverLoggerExtension) ExtensionName() string {
	return "ResolverLogger"
}

// Validate implements graphql.HandlerExtension
func (r *ResolverLoggerExtension) Validate(schema graphql.ExecutableSchema) error {
	return nil
}

// InterceptField logs each resolver duration and error
func (r *ResolverLoggerExtension) InterceptField(ctx context.Context, next graphql.Resolver) (res any, err error) {
	l := logger.FromContext(ctx, r.Logger)
	ce := l.Check(zap.DebugLevel, "graphql resolver")
	if ce == nil {
		return next(ctx)
	}

	start := time.Now()
	res, err = next(ctx)
	fc := graphql.GetFieldContext(ctx)
	ce.Write(
		zap.String("object", fc.Object),
		zap.String("field", fc.Field.Name),
		zap.Stringer("path", fc.Path()),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err),
	)
	return res, err
}
