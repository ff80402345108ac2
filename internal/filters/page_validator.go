package filters

import (
	"github.com/rpattn/barmenu/internal/domain"
)

// ValidatePage converts a raw page request into a PageSpec. Absent values use
// domain.DefaultLimit and domain.DefaultPage.
func ValidatePage(raw RawPage) (domain.PageSpec, error) {
	verr := &domain.ValidationError{}

	limit := validateBound(verr, raw.Limit, raw.limitField(), domain.ErrInvalidLimit, domain.DefaultLimit, domain.MinLimit, domain.MaxLimit)
	page := validateBound(verr, raw.Page, raw.pageField(), domain.ErrInvalidPage, domain.DefaultPage, domain.MinPage, 0)

	if err := verr.OrNil(); err != nil {
		return domain.PageSpec{}, err
	}
	return domain.NewPageSpec(limit, page)
}

// validateBound coerces raw and checks it against [lo, hi]; hi <= 0 means no
// upper bound.
func validateBound(verr *domain.ValidationError, raw any, field string, kind error, def, lo, hi int) int {
	n, present, ok := coerceInt(raw)
	switch {
	case !present:
		return def
	case !ok:
		verr.Add(kind, field, msgInteger(field))
	case n < lo:
		verr.Add(kind, field, msgAtLeast(field, lo))
	case hi > 0 && n > hi:
		verr.Add(kind, field, msgLessThan(field, hi))
	}
	return n
}
