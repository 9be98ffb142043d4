package hosted

import (
	"context"

	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
)

// Entity type names on the hosted service.
const (
	entityTicket     = "ticket"
	entityUser       = "user"
	entityCategory   = "category"
	entityInvitation = "invitation"
)

type ticketGateway struct {
	client *Client
}

func (g *ticketGateway) List(ctx context.Context, sortKey string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	if err := g.client.list(ctx, entityTicket, sortKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *ticketGateway) Filter(ctx context.Context, predicate gateway.Fields, sortKey string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	if err := g.client.filter(ctx, entityTicket, predicate, sortKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *ticketGateway) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	var out domain.Ticket
	if err := g.client.get(ctx, entityTicket, id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ticketGateway) Create(ctx context.Context, fields gateway.Fields) (*domain.Ticket, error) {
	var out domain.Ticket
	if err := g.client.create(ctx, entityTicket, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ticketGateway) Update(ctx context.Context, id string, fields gateway.Fields) (*domain.Ticket, error) {
	var out domain.Ticket
	if err := g.client.update(ctx, entityTicket, id, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type userGateway struct {
	client *Client
}

func (g *userGateway) List(ctx context.Context, sortKey string) ([]domain.User, error) {
	var out []domain.User
	if err := g.client.list(ctx, entityUser, sortKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *userGateway) Filter(ctx context.Context, predicate gateway.Fields, sortKey string) ([]domain.User, error) {
	var out []domain.User
	if err := g.client.filter(ctx, entityUser, predicate, sortKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *userGateway) Get(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := g.client.get(ctx, entityUser, id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *userGateway) Update(ctx context.Context, id string, fields gateway.Fields) (*domain.User, error) {
	var out domain.User
	if err := g.client.update(ctx, entityUser, id, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type categoryGateway struct {
	client *Client
}

func (g *categoryGateway) List(ctx context.Context, sortKey string) ([]domain.Category, error) {
	var out []domain.Category
	if err := g.client.list(ctx, entityCategory, sortKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *categoryGateway) Filter(ctx context.Context, predicate gateway.Fields, sortKey string) ([]domain.Category, error) {
	var out []domain.Category
	if err := g.client.filter(ctx, entityCategory, predicate, sortKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *categoryGateway) Get(ctx context.Context, id string) (*domain.Category, error) {
	var out domain.Category
	if err := g.client.get(ctx, entityCategory, id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *categoryGateway) Create(ctx context.Context, fields gateway.Fields) (*domain.Category, error) {
	var out domain.Category
	if err := g.client.create(ctx, entityCategory, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *categoryGateway) Update(ctx context.Context, id string, fields gateway.Fields) (*domain.Category, error) {
	var out domain.Category
	if err := g.client.update(ctx, entityCategory, id, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type invitationGateway struct {
	client *Client
}

func (g *invitationGateway) Create(ctx context.Context, fields gateway.Fields) (*domain.Invitation, error) {
	var out domain.Invitation
	if err := g.client.create(ctx, entityInvitation, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *invitationGateway) Filter(ctx context.Context, predicate gateway.Fields, sortKey string) ([]domain.Invitation, error) {
	var out []domain.Invitation
	if err := g.client.filter(ctx, entityInvitation, predicate, sortKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}
