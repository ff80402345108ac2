package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/barmenu/internal/domain"
)

const categoryColumns = "c.id, c.name, c.slug, c.description, c.sort_order, c.created_at, c.updated_at"

type categoryRepository struct {
	db DBTX
}

func scanCategory(row pgx.CollectableRow) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *categoryRepository) Query(ctx context.Context, scope domain.Scope, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[domain.Category], error) {
	if !scope.IsZero() {
		return domain.PagedResult[domain.Category]{}, unsupportedScope("categories", scope)
	}
	q := listQuery{
		columns: categoryColumns,
		from:    "FROM categories c",
		alias:   "c",
	}
	result, err := queryPage(ctx, r.db, q, sort, page, scanCategory)
	if err != nil {
		return domain.PagedResult[domain.Category]{}, fmt.Errorf("failed to list categories: %w", err)
	}
	return result, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	rows, err := r.db.Query(ctx, "SELECT "+categoryColumns+" FROM categories c WHERE c.id = $1", id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("failed to get category: %w", err)
	}
	category, err := pgx.CollectExactlyOneRow(rows, scanCategory)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
		}
		return domain.Category{}, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) ListByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]domain.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT cp.product_id, `+categoryColumns+`
		FROM category_product cp
		JOIN categories c ON c.id = cp.category_id
		WHERE cp.product_id = ANY($1)
		ORDER BY cp.product_id, c.sort_order, c.id`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list product categories: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]domain.Category, len(productIDs))
	for rows.Next() {
		var productID int64
		var c domain.Category
		if err := rows.Scan(&productID, &c.ID, &c.Name, &c.Slug, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product category: %w", err)
		}
		grouped[productID] = append(grouped[productID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list product categories: %w", err)
	}
	return grouped, nil
}
