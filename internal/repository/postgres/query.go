// Package postgres implements the catalog repositories on PostgreSQL with pgx.
package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rpattn/barmenu/internal/domain"
	"github.com/rpattn/barmenu/internal/repository"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewRepositories returns the catalog repositories backed by db.
func NewRepositories(db DBTX) repository.Repositories {
	return repository.Repositories{
		Categories:  &categoryRepository{db: db},
		Products:    &productRepository{db: db},
		Ingredients: &ingredientRepository{db: db},
	}
}

// listQuery describes one listing: the selected columns, the FROM/WHERE tail
// shared by the count and page queries, and the table alias sort columns are
// qualified with.
type listQuery struct {
	columns string
	from    string
	alias   string
	args    []any
}

// orderBy renders an ORDER BY clause for an allow-listed column, with the
// primary key as tie-breaker.
func (q listQuery) orderBy(sort domain.SortSpec) string {
	column := pgx.Identifier{q.alias, sort.Column()}.Sanitize()
	id := pgx.Identifier{q.alias, "id"}.Sanitize()
	return fmt.Sprintf("ORDER BY %s %s, %s ASC", column, sort.Direction().SQL(), id)
}

func queryPage[T any](ctx context.Context, db DBTX, q listQuery, sort domain.SortSpec, page *domain.PageSpec, scan pgx.RowToFunc[T]) (domain.PagedResult[T], error) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(q.columns)
	sb.WriteString(" ")
	sb.WriteString(q.from)
	sb.WriteString(" ")
	sb.WriteString(q.orderBy(sort))

	if page == nil {
		rows, err := db.Query(ctx, sb.String(), q.args...)
		if err != nil {
			return domain.PagedResult[T]{}, fmt.Errorf("failed to query rows: %w", err)
		}
		items, err := pgx.CollectRows(rows, scan)
		if err != nil {
			return domain.PagedResult[T]{}, fmt.Errorf("failed to scan rows: %w", err)
		}
		return domain.UnpagedResult(items), nil
	}

	var total int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) "+q.from, q.args...).Scan(&total); err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("failed to count rows: %w", err)
	}
	if page.Offset() >= total {
		return domain.NewPagedResult([]T{}, total, *page), nil
	}

	args := append(append([]any{}, q.args...), page.Limit(), page.Offset())
	sb.WriteString(" LIMIT $")
	sb.WriteString(strconv.Itoa(len(args) - 1))
	sb.WriteString(" OFFSET $")
	sb.WriteString(strconv.Itoa(len(args)))

	rows, err := db.Query(ctx, sb.String(), args...)
	if err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("failed to query page: %w", err)
	}
	items, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return domain.PagedResult[T]{}, fmt.Errorf("failed to scan page: %w", err)
	}
	return domain.NewPagedResult(items, total, *page), nil
}

func unsupportedScope(resource string, scope domain.Scope) error {
	return fmt.Errorf("%s cannot be scoped by %q", resource, scope.Parent)
}
