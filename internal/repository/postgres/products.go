package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/barmenu/internal/domain"
)

const productColumns = "p.id, p.name, p.slug, p.description, p.price_in_cents, p.sort_order, p.created_at, p.updated_at, p.deleted_at"

type productRepository struct {
	db DBTX
}

func scanProduct(row pgx.CollectableRow) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.PriceInCents, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	return p, err
}

func (r *productRepository) Query(ctx context.Context, scope domain.Scope, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[domain.Product], error) {
	q := listQuery{columns: productColumns, alias: "p"}
	switch scope.Parent {
	case "":
		q.from = "FROM products p WHERE p.deleted_at IS NULL"
	case domain.ScopeParentCategory:
		q.from = `FROM products p
		JOIN category_product cp ON cp.product_id = p.id
		WHERE cp.category_id = $1 AND p.deleted_at IS NULL`
		q.args = []any{scope.ParentID}
	default:
		return domain.PagedResult[domain.Product]{}, unsupportedScope("products", scope)
	}

	result, err := queryPage(ctx, r.db, q, sort, page, scanProduct)
	if err != nil {
		return domain.PagedResult[domain.Product]{}, fmt.Errorf("failed to list products: %w", err)
	}
	return result, nil
}

func (r *productRepository) ListByIngredientIDs(ctx context.Context, ingredientIDs []int64) (map[int64][]domain.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ip.ingredient_id, `+productColumns+`
		FROM ingredient_product ip
		JOIN products p ON p.id = ip.product_id
		WHERE ip.ingredient_id = ANY($1)
		  AND ip.deleted_at IS NULL
		  AND p.deleted_at IS NULL
		ORDER BY ip.ingredient_id, p.sort_order, p.id`, ingredientIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredient products: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]domain.Product, len(ingredientIDs))
	for rows.Next() {
		var ingredientID int64
		var p domain.Product
		if err := rows.Scan(&ingredientID, &p.ID, &p.Name, &p.Slug, &p.Description, &p.PriceInCents, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient product: %w", err)
		}
		grouped[ingredientID] = append(grouped[ingredientID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list ingredient products: %w", err)
	}
	return grouped, nil
}
