package domain

import (
	"fmt"
	"math"
)

// Pagination bounds shared by every surface.
const (
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100
	DefaultPage  = 1
	MinPage      = 1
)

// PageSpec is a validated (limit, page) pair. Page numbers are 1-based.
type PageSpec struct {
	limit int
	page  int
}

// NewPageSpec enforces limit in [MinLimit, MaxLimit] and page >= MinPage.
func NewPageSpec(limit, page int) (PageSpec, error) {
	if limit < MinLimit || limit > MaxLimit {
		return PageSpec{}, fmt.Errorf("%w: %d outside [%d, %d]", ErrInvalidLimit, limit, MinLimit, MaxLimit)
	}
	if page < MinPage {
		return PageSpec{}, fmt.Errorf("%w: %d is below %d", ErrInvalidPage, page, MinPage)
	}
	return PageSpec{limit: limit, page: page}, nil
}

// DefaultPageSpec returns the first page at the default size.
func DefaultPageSpec() PageSpec {
	return PageSpec{limit: DefaultLimit, page: DefaultPage}
}

func (p PageSpec) Limit() int {
	return p.limit
}

func (p PageSpec) Page() int {
	return p.page
}

// Offset is the number of rows skipped before this page. It saturates at
// math.MaxInt when (page-1)*limit does not fit in an int.
func (p PageSpec) Offset() int {
	if p.limit > 0 && p.page-1 > math.MaxInt/p.limit {
		return math.MaxInt
	}
	return (p.page - 1) * p.limit
}
