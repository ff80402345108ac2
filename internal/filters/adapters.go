package filters

import (
	"fmt"
	"net/url"

	"github.com/rpattn/barmenu/internal/domain"
)

// Mode selects whether a listing is paginated.
type Mode int

const (
	Paginated Mode = iota
	SortingOnly
)

// FromQuery extracts sortBy, sortOrder, limit and page from a REST query string.
func FromQuery(values url.Values) Raw {
	return Raw{
		Sort: RawSort{
			Column:         queryValue(values, FieldSortBy),
			Direction:      queryValue(values, FieldSortOrder),
			ColumnField:    FieldSortBy,
			DirectionField: FieldSortOrder,
		},
		Page: RawPage{
			Limit:      anyOrNil(queryValue(values, FieldLimit)),
			Page:       anyOrNil(queryValue(values, FieldPage)),
			LimitField: FieldLimit,
			PageField:  FieldPage,
		},
	}
}

// FromGraphQLArgs extracts orderBy {column, order}, first and page from
// resolved GraphQL field arguments.
func FromGraphQLArgs(args map[string]any) Raw {
	raw := Raw{
		Sort: RawSort{
			ColumnField:    FieldOrderByColumn,
			DirectionField: FieldOrderByOrder,
		},
		Page: RawPage{
			Limit:      args[FieldFirst],
			Page:       args[FieldPage],
			LimitField: FieldFirst,
			PageField:  FieldPage,
		},
	}
	if orderBy, ok := args[FieldOrderBy].(map[string]any); ok {
		raw.Sort.Column = stringArg(orderBy["column"])
		raw.Sort.Direction = stringArg(orderBy["order"])
	}
	return raw
}

// Build validates raw against resource. In SortingOnly mode page values are
// ignored entirely. Every rejected field is reported in one
// *domain.ValidationError, page fields first.
func Build(raw Raw, resource domain.Resource, mode Mode) (domain.QueryFilters, error) {
	verr := &domain.ValidationError{}

	var page domain.PageSpec
	if mode == Paginated {
		p, err := ValidatePage(raw.Page)
		if err != nil && !verr.Merge(err) {
			return domain.QueryFilters{}, err
		}
		page = p
	}

	sort, err := ValidateSort(raw.Sort, resource)
	if err != nil && !verr.Merge(err) {
		return domain.QueryFilters{}, err
	}

	if err := verr.OrNil(); err != nil {
		return domain.QueryFilters{}, err
	}
	if mode == SortingOnly {
		return domain.NewSortingFilters(sort), nil
	}
	return domain.NewPaginatedFilters(sort, page), nil
}

func queryValue(values url.Values, key string) *string {
	if !values.Has(key) {
		return nil
	}
	v := values.Get(key)
	return &v
}

func anyOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringArg(v any) *string {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		return &s
	case *string:
		return s
	case fmt.Stringer:
		str := s.String()
		return &str
	}
	str := fmt.Sprint(v)
	return &str
}
