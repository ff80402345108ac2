package domain

import (
	"fmt"
	"slices"
	"strings"
)

// SortDirection represents ordering direction for sortable fields.
type SortDirection string

const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// sortDirections lists the accepted directions in the order they are reported to clients.
var sortDirections = []string{string(SortDirectionAsc), string(SortDirectionDesc)}

// SortDirectionNames returns the accepted direction names.
func SortDirectionNames() []string {
	return slices.Clone(sortDirections)
}

// ParseSortDirection normalizes raw case-insensitively.
func ParseSortDirection(raw string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(raw))) {
	case SortDirectionAsc:
		return SortDirectionAsc, nil
	case SortDirectionDesc:
		return SortDirectionDesc, nil
	}
	return "", fmt.Errorf("%w: %q is not one of %s", ErrInvalidSortDirection, raw, joinNames(sortDirections))
}

// SQL returns the keyword used in ORDER BY clauses.
func (d SortDirection) SQL() string {
	if d == SortDirectionDesc {
		return "DESC"
	}
	return "ASC"
}

// SortColumns is an ordered allow-list of sortable column names.
type SortColumns struct {
	names []string
}

// NewSortColumns copies names into an allow-list, dropping duplicates.
func NewSortColumns(names ...string) SortColumns {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return SortColumns{names: out}
}

// With returns a new allow-list extended by extra columns.
func (c SortColumns) With(extra ...string) SortColumns {
	return NewSortColumns(append(slices.Clone(c.names), extra...)...)
}

func (c SortColumns) Contains(name string) bool {
	return slices.Contains(c.names, name)
}

func (c SortColumns) Names() []string {
	return slices.Clone(c.names)
}

func (c SortColumns) Len() int {
	return len(c.names)
}

// String joins the columns in declared order.
func (c SortColumns) String() string {
	return joinNames(c.names)
}

// SortSpec is a validated (column, direction) pair.
type SortSpec struct {
	column    string
	direction SortDirection
}

// NewSortSpec builds a SortSpec, rejecting columns outside the allow-list and
// directions other than asc/desc.
func NewSortSpec(column string, direction SortDirection, allowed SortColumns) (SortSpec, error) {
	if !allowed.Contains(column) {
		return SortSpec{}, fmt.Errorf("%w: %q is not one of %s", ErrInvalidSortColumn, column, allowed)
	}
	dir, err := ParseSortDirection(string(direction))
	if err != nil {
		return SortSpec{}, err
	}
	return SortSpec{column: column, direction: dir}, nil
}

func (s SortSpec) Column() string {
	return s.column
}

func (s SortSpec) Direction() SortDirection {
	return s.direction
}

func (s SortSpec) IsZero() bool {
	return s.column == ""
}

func (s SortSpec) String() string {
	return s.column + " " + string(s.direction)
}
