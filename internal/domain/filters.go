package domain

// QueryFilters combines the sort order of a listing with optional pagination.
type QueryFilters struct {
	sort      SortSpec
	page      PageSpec
	paginated bool
}

// NewPaginatedFilters returns filters for a bounded page.
func NewPaginatedFilters(sort SortSpec, page PageSpec) QueryFilters {
	return QueryFilters{sort: sort, page: page, paginated: true}
}

// NewSortingFilters returns filters for an unbounded, fully sorted sequence.
func NewSortingFilters(sort SortSpec) QueryFilters {
	return QueryFilters{sort: sort}
}

func (f QueryFilters) Sort() SortSpec {
	return f.sort
}

func (f QueryFilters) HasPagination() bool {
	return f.paginated
}

// Pagination returns the page options or ErrPaginationUnavailable for
// sorting-only filters.
func (f QueryFilters) Pagination() (PageSpec, error) {
	if !f.paginated {
		return PageSpec{}, ErrPaginationUnavailable
	}
	return f.page, nil
}

// PageOrNil returns a pointer to a copy of the page options, or nil.
func (f QueryFilters) PageOrNil() *PageSpec {
	if !f.paginated {
		return nil
	}
	p := f.page
	return &p
}
