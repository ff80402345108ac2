package domain

// Resource names a listable collection together with its sort allow-list.
type Resource struct {
	Name          string
	Columns       SortColumns
	DefaultColumn string
}

// Sortable column names.
const (
	ColumnSortOrder    = "sort_order"
	ColumnSlug         = "slug"
	ColumnCreatedAt    = "created_at"
	ColumnName         = "name"
	ColumnPriceInCents = "price_in_cents"
)

func baseSortColumns() SortColumns {
	return NewSortColumns(ColumnSortOrder, ColumnSlug, ColumnCreatedAt, ColumnName)
}

// CategoryResource is the sort configuration of categories.
func CategoryResource() Resource {
	return Resource{Name: "categories", Columns: baseSortColumns(), DefaultColumn: ColumnSortOrder}
}

// ProductResource additionally allows sorting by price.
func ProductResource() Resource {
	return Resource{
		Name:          "products",
		Columns:       baseSortColumns().With(ColumnPriceInCents),
		DefaultColumn: ColumnSortOrder,
	}
}

// IngredientResource has no sort_order column and defaults to name.
func IngredientResource() Resource {
	return Resource{
		Name:          "ingredients",
		Columns:       NewSortColumns(ColumnSlug, ColumnCreatedAt, ColumnName),
		DefaultColumn: ColumnName,
	}
}

// DefaultSort orders by the default column, ascending.
func (r Resource) DefaultSort() SortSpec {
	return SortSpec{column: r.DefaultColumn, direction: SortDirectionAsc}
}
