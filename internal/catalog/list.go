// Package catalog runs listing operations for the REST and GraphQL surfaces:
// raw client parameters are normalized, the data source is queried, and the
// result is shaped into an envelope or a plain sequence.
package catalog

import (
	"context"

	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/filters"
)

// Source is the data-query collaborator of a listing. A nil page asks for
// every row in sort order.
type Source[T any] interface {
	Query(ctx context.Context, scope domain.Scope, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[T], error)
}

// Listing is the outcome of a list operation.
type Listing[T any] struct {
	filters domain.QueryFilters
	result  domain.PagedResult[T]
}

// Filters returns the normalized filters the listing ran with.
func (l Listing[T]) Filters() domain.QueryFilters {
	return l.filters
}

// Items returns the listed records in order.
func (l Listing[T]) Items() []T {
	if l.result.Items == nil {
		return []T{}
	}
	return l.result.Items
}

// Envelope wraps a paginated listing. Sorting-only listings have no
// pagination counters and fail with domain.ErrPaginationUnavailable.
func (l Listing[T]) Envelope() (domain.PaginationEnvelope[T], error) {
	if !l.filters.HasPagination() {
		return domain.PaginationEnvelope[T]{}, domain.ErrPaginationUnavailable
	}
	return domain.BuildEnvelope(l.result), nil
}

// List validates raw against resource and queries src. Validation failures
// are returned before src is consulted; src errors are returned unchanged.
func List[T any](ctx context.Context, src Source[T], scope domain.Scope, raw filters.Raw, resource domain.Resource, wantsPagination bool) (Listing[T], error) {
	mode := filters.SortingOnly
	if wantsPagination {
		mode = filters.Paginated
	}
	f, err := filters.Build(raw, resource, mode)
	if err != nil {
		return Listing[T]{}, err
	}
	return Run(ctx, src, scope, f)
}

// Run queries src with already normalized filters.
func Run[T any](ctx context.Context, src Source[T], scope domain.Scope, f domain.QueryFilters) (Listing[T], error) {
	result, err := src.Query(ctx, scope, f.Sort(), f.PageOrNil())
	if err != nil {
		return Listing[T]{}, err
	}
	return Listing[T]{filters: f, result: result}, nil
}
