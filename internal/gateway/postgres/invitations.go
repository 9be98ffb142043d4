package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
)

var invitationColumns = map[string]struct{}{
	"id":           {},
	"email":        {},
	"role":         {},
	"invited_by":   {},
	"message":      {},
	"token_hash":   {},
	"expires_at":   {},
	"created_date": {},
}

const invitationSelect = `SELECT id, email, role, invited_by, message, token_hash,
        expires_at, created_date
    FROM invitations`

type invitationGateway struct {
	pool *pgxpool.Pool
}

func (g *invitationGateway) Create(ctx context.Context, fields gateway.Fields) (*domain.Invitation, error) {
	columns, placeholders, args, err := buildInsert(fields, invitationColumns)
	if err != nil {
		return nil, err
	}
	query := `INSERT INTO invitations (` + columns + `) VALUES (` + placeholders + `)
        RETURNING id, email, role, invited_by, message, token_hash, expires_at, created_date`
	row := g.pool.QueryRow(ctx, query, args...)
	return scanInvitation(row)
}

func (g *invitationGateway) Filter(ctx context.Context, predicate gateway.Fields, sortKey string) ([]domain.Invitation, error) {
	where, args, err := buildWhere(predicate, invitationColumns)
	if err != nil {
		return nil, err
	}
	rows, err := g.pool.Query(ctx, invitationSelect+where+orderBy(sortKey, invitationColumns), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := []domain.Invitation{}
	for rows.Next() {
		invitation, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, *invitation)
	}
	return invitations, rows.Err()
}

func scanInvitation(row pgx.Row) (*domain.Invitation, error) {
	var invitation domain.Invitation
	if err := row.Scan(
		&invitation.ID,
		&invitation.Email,
		&invitation.Role,
		&invitation.InvitedBy,
		&invitation.Message,
		&invitation.TokenHash,
		&invitation.ExpiresAt,
		&invitation.CreatedDate,
	); err != nil {
		return nil, err
	}
	return &invitation, nil
}
