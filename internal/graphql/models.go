package graphql

// Graph models mirror the schema types. Fields are read by json tag; relation
// fields are resolved separately from the unexported key.

type PaginatorInfo struct {
	Count        int  `json:"count"`
	CurrentPage  int  `json:"currentPage"`
	FirstItem    *int `json:"firstItem"`
	HasMorePages bool `json:"hasMorePages"`
	LastItem     *int `json:"lastItem"`
	LastPage     int  `json:"lastPage"`
	PerPage      int  `json:"perPage"`
	Total        int  `json:"total"`
}

type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sortOrder"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`

	key int64
}

type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  *string `json:"description"`
	PriceInCents int64   `json:"priceInCents"`
	SortOrder    int     `json:"sortOrder"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`

	key int64
}

type Ingredient struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`

	key int64
}

type CategoryPaginator struct {
	Data          []*Category    `json:"data"`
	PaginatorInfo *PaginatorInfo `json:"paginatorInfo"`
}

type ProductPaginator struct {
	Data          []*Product     `json:"data"`
	PaginatorInfo *PaginatorInfo `json:"paginatorInfo"`
}

type IngredientPaginator struct {
	Data          []*Ingredient  `json:"data"`
	PaginatorInfo *PaginatorInfo `json:"paginatorInfo"`
}
