package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
)

var ticketColumns = map[string]struct{}{
	"id":               {},
	"title":            {},
	"description":      {},
	"status":           {},
	"priority":         {},
	"category_id":      {},
	"requester_email":  {},
	"assigned_to":      {},
	"resolution_notes": {},
	"upvotes":          {},
	"downvotes":        {},
	"attachment_urls":  {},
	"created_date":     {},
	"last_reply":       {},
}

const ticketSelect = `SELECT id, title, description, status, priority, category_id,
        requester_email, assigned_to, resolution_notes, upvotes, downvotes,
        attachment_urls, created_date, last_reply
    FROM tickets`

type ticketGateway struct {
	pool *pgxpool.Pool
}

func (g *ticketGateway) List(ctx context.Context, sortKey string) ([]domain.Ticket, error) {
	return g.query(ctx, ticketSelect+orderBy(sortKey, ticketColumns))
}

func (g *ticketGateway) Filter(ctx context.Context, predicate gateway.Fields, sortKey string) ([]domain.Ticket, error) {
	where, args, err := buildWhere(predicate, ticketColumns)
	if err != nil {
		return nil, err
	}
	return g.query(ctx, ticketSelect+where+orderBy(sortKey, ticketColumns), args...)
}

func (g *ticketGateway) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	row := g.pool.QueryRow(ctx, ticketSelect+" WHERE id=$1", id)
	return scanTicket(row)
}

func (g *ticketGateway) Create(ctx context.Context, fields gateway.Fields) (*domain.Ticket, error) {
	columns, placeholders, args, err := buildInsert(fields, ticketColumns)
	if err != nil {
		return nil, err
	}
	query := `INSERT INTO tickets (` + columns + `) VALUES (` + placeholders + `)
        RETURNING id, title, description, status, priority, category_id,
            requester_email, assigned_to, resolution_notes, upvotes, downvotes,
            attachment_urls, created_date, last_reply`
	row := g.pool.QueryRow(ctx, query, args...)
	return scanTicket(row)
}

func (g *ticketGateway) Update(ctx context.Context, id string, fields gateway.Fields) (*domain.Ticket, error) {
	set, args, err := buildSet(fields, ticketColumns)
	if err != nil {
		return nil, err
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tickets SET %s, last_reply=NOW()
        WHERE id=$%d
        RETURNING id, title, description, status, priority, category_id,
            requester_email, assigned_to, resolution_notes, upvotes, downvotes,
            attachment_urls, created_date, last_reply`, set, len(args))
	row := g.pool.QueryRow(ctx, query, args...)
	return scanTicket(row)
}

func (g *ticketGateway) query(ctx context.Context, query string, args ...any) ([]domain.Ticket, error) {
	rows, err := g.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := []domain.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Status,
		&ticket.Priority,
		&ticket.CategoryID,
		&ticket.RequesterEmail,
		&ticket.AssignedTo,
		&ticket.ResolutionNotes,
		&ticket.Upvotes,
		&ticket.Downvotes,
		&ticket.AttachmentURLs,
		&ticket.CreatedDate,
		&ticket.LastReply,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}
