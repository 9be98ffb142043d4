package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
)

var userColumns = map[string]struct{}{
	"id":           {},
	"email":        {},
	"full_name":    {},
	"role":         {},
	"department":   {},
	"last_login":   {},
	"created_date": {},
}

const userSelect = `SELECT id, email, full_name, role, department, last_login FROM users`

type userGateway struct {
	pool *pgxpool.Pool
}

func (g *userGateway) List(ctx context.Context, sortKey string) ([]domain.User, error) {
	return g.query(ctx, userSelect+orderBy(sortKey, userColumns))
}

func (g *userGateway) Filter(ctx context.Context, predicate gateway.Fields, sortKey string) ([]domain.User, error) {
	where, args, err := buildWhere(predicate, userColumns)
	if err != nil {
		return nil, err
	}
	return g.query(ctx, userSelect+where+orderBy(sortKey, userColumns), args...)
}

func (g *userGateway) Get(ctx context.Context, id string) (*domain.User, error) {
	row := g.pool.QueryRow(ctx, userSelect+" WHERE id=$1", id)
	return scanUser(row)
}

func (g *userGateway) Update(ctx context.Context, id string, fields gateway.Fields) (*domain.User, error) {
	set, args, err := buildSet(fields, userColumns)
	if err != nil {
		return nil, err
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id=$%d
        RETURNING id, email, full_name, role, department, last_login`, set, len(args))
	row := g.pool.QueryRow(ctx, query, args...)
	return scanUser(row)
}

func (g *userGateway) query(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := g.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Role,
		&user.Department,
		&user.LastLogin,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
