package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/rpattn/barmenu/internal/db"
	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/repository/memory"
)

func text(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Memory loads menu into store.
func Memory(store *memory.Store, menu Menu) error {
	categories := make(map[string]int64, len(menu.Categories))
	for _, c := range menu.Categories {
		saved := store.AddCategory(domain.Category{
			Name:        c.Name,
			Slug:        c.Slug,
			Description: text(c.Description),
			SortOrder:   c.SortOrder,
		})
		categories[c.Slug] = saved.ID
	}

	ingredients := make(map[string]int64, len(menu.Ingredients))
	for _, i := range menu.Ingredients {
		saved := store.AddIngredient(domain.Ingredient{
			Name:        i.Name,
			Slug:        i.Slug,
			Description: text(i.Description),
		})
		ingredients[i.Slug] = saved.ID
	}

	for _, p := range menu.Products {
		categoryID, ok := categories[p.Category]
		if !ok {
			return fmt.Errorf("product %s: unknown category %q", p.Slug, p.Category)
		}
		saved := store.AddProduct(domain.Product{
			Name:         p.Name,
			Slug:         p.Slug,
			Description:  text(p.Description),
			PriceInCents: p.PriceInCents,
			SortOrder:    p.SortOrder,
		})
		store.AttachProduct(categoryID, saved.ID, p.SortOrder)
		for _, component := range p.Ingredients {
			ingredientID, ok := ingredients[component.Slug]
			if !ok {
				return fmt.Errorf("product %s: unknown ingredient %q", p.Slug, component.Slug)
			}
			store.AttachIngredient(saved.ID, ingredientID, component.Type)
		}
	}
	return nil
}

// Postgres upserts menu by slug inside one transaction, so running it twice
// leaves the database unchanged.
func Postgres(ctx context.Context, conn *db.Connection, menu Menu, logger *zap.Logger) error {
	return conn.WithTx(ctx, logger, func(tx pgx.Tx) error {
		categories := make(map[string]int64, len(menu.Categories))
		for _, c := range menu.Categories {
			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO categories (name, slug, description, sort_order)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (slug) DO UPDATE
				SET name = EXCLUDED.name, description = EXCLUDED.description,
				    sort_order = EXCLUDED.sort_order, updated_at = NOW()
				RETURNING id`,
				c.Name, c.Slug, text(c.Description), c.SortOrder,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Slug, err)
			}
			categories[c.Slug] = id
		}

		ingredients := make(map[string]int64, len(menu.Ingredients))
		for _, i := range menu.Ingredients {
			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO ingredients (name, slug, description)
				VALUES ($1, $2, $3)
				ON CONFLICT (slug) DO UPDATE
				SET name = EXCLUDED.name, description = EXCLUDED.description, updated_at = NOW()
				RETURNING id`,
				i.Name, i.Slug, text(i.Description),
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("failed to seed ingredient %s: %w", i.Slug, err)
			}
			ingredients[i.Slug] = id
		}

		for _, p := range menu.Products {
			categoryID, ok := categories[p.Category]
			if !ok {
				return fmt.Errorf("product %s: unknown category %q", p.Slug, p.Category)
			}

			var productID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO products (name, slug, description, price_in_cents, sort_order)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (slug) DO UPDATE
				SET name = EXCLUDED.name, description = EXCLUDED.description,
				    price_in_cents = EXCLUDED.price_in_cents, sort_order = EXCLUDED.sort_order,
				    updated_at = NOW()
				RETURNING id`,
				p.Name, p.Slug, text(p.Description), p.PriceInCents, p.SortOrder,
			).Scan(&productID)
			if err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.Slug, err)
			}

			if _, err := tx.Exec(ctx, `
				INSERT INTO category_product (category_id, product_id, sort_order)
				VALUES ($1, $2, $3)
				ON CONFLICT (category_id, product_id) DO UPDATE SET sort_order = EXCLUDED.sort_order`,
				categoryID, productID, p.SortOrder,
			); err != nil {
				return fmt.Errorf("failed to attach product %s: %w", p.Slug, err)
			}

			for _, component := range p.Ingredients {
				ingredientID, ok := ingredients[component.Slug]
				if !ok {
					return fmt.Errorf("product %s: unknown ingredient %q", p.Slug, component.Slug)
				}
				if _, err := tx.Exec(ctx, `
					INSERT INTO ingredient_product (product_id, ingredient_id, type)
					VALUES ($1, $2, $3)
					ON CONFLICT (product_id, ingredient_id) DO UPDATE SET type = EXCLUDED.type`,
					productID, ingredientID, string(component.Type),
				); err != nil {
					return fmt.Errorf("failed to attach ingredient %s to %s: %w", component.Slug, p.Slug, err)
				}
			}
		}

		logger.Info("demo menu seeded",
			zap.Int("categories", len(menu.Categories)),
			zap.Int("ingredients", len(menu.Ingredients)),
			zap.Int("products", len(menu.Products)),
		)
		return nil
	})
}
