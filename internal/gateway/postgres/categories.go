package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
)

var categoryColumns = map[string]struct{}{
	"id":           {},
	"name":         {},
	"color":        {},
	"is_active":    {},
	"created_date": {},
}

const categorySelect = `SELECT id, name, color, is_active, created_date FROM categories`

type categoryGateway struct {
	pool *pgxpool.Pool
}

func (g *categoryGateway) List(ctx context.Context, sortKey string) ([]domain.Category, error) {
	return g.query(ctx, categorySelect+orderBy(sortKey, categoryColumns))
}

func (g *categoryGateway) Filter(ctx context.Context, predicate gateway.Fields, sortKey string) ([]domain.Category, error) {
	where, args, err := buildWhere(predicate, categoryColumns)
	if err != nil {
		return nil, err
	}
	return g.query(ctx, categorySelect+where+orderBy(sortKey, categoryColumns), args...)
}

func (g *categoryGateway) Get(ctx context.Context, id string) (*domain.Category, error) {
	row := g.pool.QueryRow(ctx, categorySelect+" WHERE id=$1", id)
	return scanCategory(row)
}

func (g *categoryGateway) Create(ctx context.Context, fields gateway.Fields) (*domain.Category, error) {
	columns, placeholders, args, err := buildInsert(fields, categoryColumns)
	if err != nil {
		return nil, err
	}
	query := `INSERT INTO categories (` + columns + `) VALUES (` + placeholders + `)
        RETURNING id, name, color, is_active, created_date`
	row := g.pool.QueryRow(ctx, query, args...)
	return scanCategory(row)
}

func (g *categoryGateway) Update(ctx context.Context, id string, fields gateway.Fields) (*domain.Category, error) {
	set, args, err := buildSet(fields, categoryColumns)
	if err != nil {
		return nil, err
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE categories SET %s WHERE id=$%d
        RETURNING id, name, color, is_active, created_date`, set, len(args))
	row := g.pool.QueryRow(ctx, query, args...)
	return scanCategory(row)
}

func (g *categoryGateway) query(ctx context.Context, query string, args ...any) ([]domain.Category, error) {
	rows, err := g.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var category domain.Category
	if err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Color,
		&category.IsActive,
		&category.CreatedDate,
	); err != nil {
		return nil, err
	}
	return &category, nil
}
