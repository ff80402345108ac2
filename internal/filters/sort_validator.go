package filters

import (
	"github.com/rpattn/barmenu/internal/domain"
)

// ValidateSort converts a raw sort request into a SortSpec allowed for resource.
// An absent column falls back to resource.DefaultColumn and an absent direction
// to ascending. Failures are reported as a *domain.ValidationError naming the
// wire fields.
func ValidateSort(raw RawSort, resource domain.Resource) (domain.SortSpec, error) {
	verr := &domain.ValidationError{}

	column := resource.DefaultColumn
	if c := normalizeString(raw.Column); c != nil {
		column = *c
	}
	if !resource.Columns.Contains(column) {
		verr.Add(domain.ErrInvalidSortColumn, raw.columnField(), msgOneOf(raw.columnField(), resource.Columns.Names()))
	}

	direction := domain.SortDirectionAsc
	if d := normalizeString(raw.Direction); d != nil {
		parsed, err := domain.ParseSortDirection(*d)
		if err != nil {
			verr.Add(domain.ErrInvalidSortDirection, raw.directionField(), msgOneOf(raw.directionField(), domain.SortDirectionNames()))
		}
		direction = parsed
	}

	if err := verr.OrNil(); err != nil {
		return domain.SortSpec{}, err
	}
	return domain.NewSortSpec(column, direction, resource.Columns)
}
