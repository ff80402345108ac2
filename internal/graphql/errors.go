package graphql

import (
	"context"
	"errors"

	gql "github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/pkg/logger"
)

// Values of extensions.category on reported errors.
const (
	CategoryValidation = "validation"
	CategoryNotFound   = "not_found"
	CategoryInternal   = "internal"
)

// presentError reports resolver validation failures by their first message
// and hides every other resolver error behind a generic message after logging
// it. Errors raised by gqlgen itself pass through unchanged.
func (r *Resolver) presentError(ctx context.Context, err error) *gqlerror.Error {
	presented := gql.DefaultErrorPresenter(ctx, err)

	var rerr *resolverError
	if !errors.As(err, &rerr) {
		return presented
	}
	out := &gqlerror.Error{
		Path:      presented.Path,
		Locations: presented.Locations,
	}
	if fc := gql.GetFieldContext(ctx); len(out.Locations) == 0 && fc != nil && fc.Field.Field != nil && fc.Field.Position != nil {
		out.Locations = []gqlerror.Location{{Line: fc.Field.Position.Line, Column: fc.Field.Position.Column}}
	}

	var notFound *domain.NotFoundError
	verr, isValidation := domain.AsValidationError(rerr.err)
	switch {
	case isValidation:
		out.Message = verr.FirstMessage()
		out.Extensions = map[string]any{"category": CategoryValidation}
	case errors.As(rerr.err, &notFound):
		out.Message = notFound.Error()
		out.Extensions = map[string]any{"category": CategoryNotFound}
	case errors.Is(rerr.err, domain.ErrNotFound):
		out.Message = domain.ErrNotFound.Error()
		out.Extensions = map[string]any{"category": CategoryNotFound}
	default:
		logger.FromContext(ctx, r.logger).Error("graphql resolver failed",
			zap.Error(rerr.err),
			zap.Stringer("path", out.Path),
		)
		out.Message = "internal server error"
		out.Extensions = map[string]any{"category": CategoryInternal}
	}
	return out
}
