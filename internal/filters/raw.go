// Package filters turns protocol-specific sort and pagination inputs into
// validated domain.QueryFilters.
package filters

// Wire field names of the REST query string.
const (
	FieldSortBy    = "sortBy"
	FieldSortOrder = "sortOrder"
	FieldLimit     = "limit"
	FieldPage      = "page"
)

// Wire field names of the GraphQL arguments.
const (
	FieldOrderBy       = "orderBy"
	FieldOrderByColumn = "orderBy.column"
	FieldOrderByOrder  = "orderBy.order"
	FieldFirst         = "first"
)

// RawSort is an unvalidated sort request. Nil values are absent.
type RawSort struct {
	Column    *string
	Direction *string

	ColumnField    string
	DirectionField string
}

// RawPage is an unvalidated page request. Values may be nil (absent), any Go
// integer kind, an integral float, a json.Number or a numeric string.
type RawPage struct {
	Limit any
	Page  any

	LimitField string
	PageField  string
}

// Raw is what a protocol adapter extracts from one request.
type Raw struct {
	Sort RawSort
	Page RawPage
}

func (s RawSort) columnField() string {
	return orDefault(s.ColumnField, FieldSortBy)
}

func (s RawSort) directionField() string {
	return orDefault(s.DirectionField, FieldSortOrder)
}

func (p RawPage) limitField() string {
	return orDefault(p.LimitField, FieldLimit)
}

func (p RawPage) pageField() string {
	return orDefault(p.PageField, FieldPage)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
