package domain

// PagedResult is one page of a sorted query as returned by a data source.
type PagedResult[T any] struct {
	Items        []T
	Total        int
	PerPage      int
	CurrentPage  int
	LastPage     int
	FirstItem    *int
	LastItem     *int
	HasMorePages bool
}

// NewPagedResult derives the page counters from items, the total row count and
// the requested page.
func NewPagedResult[T any](items []T, total int, page PageSpec) PagedResult[T] {
	r := PagedResult[T]{
		Items:       items,
		Total:       total,
		PerPage:     page.Limit(),
		CurrentPage: page.Page(),
	}
	m := computeMeta(len(items), total, r.PerPage, r.CurrentPage)
	r.LastPage = m.LastPage
	r.FirstItem = m.FirstItem
	r.LastItem = m.LastItem
	r.HasMorePages = m.HasMorePages
	return r
}

// PaginationMeta holds the counters reported next to a page of data.
type PaginationMeta struct {
	Count        int
	CurrentPage  int
	FirstItem    *int
	LastItem     *int
	HasMorePages bool
	LastPage     int
	PerPage      int
	Total        int
}

// PaginationEnvelope is the protocol-neutral {data, meta} response shape.
type PaginationEnvelope[T any] struct {
	Data []T
	Meta PaginationMeta
}

// BuildEnvelope turns a paged result into an envelope. Counters are recomputed
// from Items, Total, PerPage and CurrentPage, so a source that only fills those
// fields still yields a consistent envelope. The requested page is never clamped.
func BuildEnvelope[T any](result PagedResult[T]) PaginationEnvelope[T] {
	data := result.Items
	if data == nil {
		data = []T{}
	}
	return PaginationEnvelope[T]{
		Data: data,
		Meta: computeMeta(len(data), result.Total, result.PerPage, result.CurrentPage),
	}
}

// MapEnvelope converts the data of an envelope while keeping its meta.
func MapEnvelope[T, U any](env PaginationEnvelope[T], fn func(T) U) PaginationEnvelope[U] {
	out := make([]U, len(env.Data))
	for i, item := range env.Data {
		out[i] = fn(item)
	}
	return PaginationEnvelope[U]{Data: out, Meta: env.Meta}
}

func computeMeta(count, total, perPage, currentPage int) PaginationMeta {
	if total < 0 {
		total = 0
	}
	if currentPage < MinPage {
		currentPage = MinPage
	}

	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = (total + perPage - 1) / perPage
	}

	m := PaginationMeta{
		Count:        count,
		CurrentPage:  currentPage,
		HasMorePages: currentPage < lastPage,
		LastPage:     lastPage,
		PerPage:      perPage,
		Total:        total,
	}
	if count > 0 {
		first := (currentPage-1)*perPage + 1
		last := first + count - 1
		m.FirstItem = &first
		m.LastItem = &last
	}
	return m
}

// UnpagedResult wraps a complete, sorted sequence as a single page.
func UnpagedResult[T any](items []T) PagedResult[T] {
	n := len(items)
	return PagedResult[T]{
		Items:       items,
		Total:       n,
		PerPage:     n,
		CurrentPage: 1,
		LastPage:    1,
	}
}
