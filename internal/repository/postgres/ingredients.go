package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/barmenu/internal/domain"
)

const ingredientColumns = "i.id, i.name, i.slug, i.description, i.created_at, i.updated_at, i.deleted_at"

type ingredientRepository struct {
	db DBTX
}

func scanIngredient(row pgx.CollectableRow) (domain.Ingredient, error) {
	var i domain.Ingredient
	err := row.Scan(&i.ID, &i.Name, &i.Slug, &i.Description, &i.CreatedAt, &i.UpdatedAt, &i.DeletedAt)
	return i, err
}

func (r *ingredientRepository) Query(ctx context.Context, scope domain.Scope, sort domain.SortSpec, page *domain.PageSpec) (domain.PagedResult[domain.Ingredient], error) {
	if !scope.IsZero() {
		return domain.PagedResult[domain.Ingredient]{}, unsupportedScope("ingredients", scope)
	}
	q := listQuery{
		columns: ingredientColumns,
		from:    "FROM ingredients i WHERE i.deleted_at IS NULL",
		alias:   "i",
	}
	result, err := queryPage(ctx, r.db, q, sort, page, scanIngredient)
	if err != nil {
		return domain.PagedResult[domain.Ingredient]{}, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return result, nil
}

func (r *ingredientRepository) ListByProductIDs(ctx context.Context, productIDs []int64) (map[int64][]domain.ProductIngredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ip.product_id, ip.type, `+ingredientColumns+`
		FROM ingredient_product ip
		JOIN ingredients i ON i.id = ip.ingredient_id
		WHERE ip.product_id = ANY($1)
		  AND ip.deleted_at IS NULL
		  AND i.deleted_at IS NULL
		ORDER BY ip.product_id, i.name, i.id`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list product ingredients: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]domain.ProductIngredient, len(productIDs))
	for rows.Next() {
		var (
			productID int64
			kind      string
			pi        domain.ProductIngredient
		)
		if err := rows.Scan(&productID, &kind, &pi.ID, &pi.Name, &pi.Slug, &pi.Description, &pi.CreatedAt, &pi.UpdatedAt, &pi.DeletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product ingredient: %w", err)
		}
		if pi.Type, err = domain.ParseIngredientType(kind); err != nil {
			return nil, fmt.Errorf("product %d ingredient %d: %w", productID, pi.ID, err)
		}
		grouped[productID] = append(grouped[productID], pi)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list product ingredients: %w", err)
	}
	return grouped, nil
}
