// Package gateway defines the contract against the entity store backing
// tickets, users, categories and invitations. The store is the single source
// of truth; drivers provide list/filter/create/update access with no
// transactional guarantees across calls and no partial-field validation.
package gateway

import (
	"context"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// Sort keys understood by every driver. Lists are delivered pre-sorted;
// callers never re-sort.
const (
	SortLastReplyDesc   = "-last_reply"
	SortCreatedDateDesc = "-created_date"
)

// Fields carries partial entity fields, either as an update payload or as an
// equality predicate. Keys use the entity wire names (snake_case). Omitted
// keys are left untouched by updates and unconstrained by filters.
type Fields map[string]any

// TicketGateway provides ticket persistence.
type TicketGateway interface {
	List(ctx context.Context, sortKey string) ([]domain.Ticket, error)
	Filter(ctx context.Context, predicate Fields, sortKey string) ([]domain.Ticket, error)
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	Create(ctx context.Context, fields Fields) (*domain.Ticket, error)
	Update(ctx context.Context, id string, fields Fields) (*domain.Ticket, error)
}

// UserGateway provides user records owned by the identity provider side.
type UserGateway interface {
	List(ctx context.Context, sortKey string) ([]domain.User, error)
	Filter(ctx context.Context, predicate Fields, sortKey string) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, fields Fields) (*domain.User, error)
}

// CategoryGateway provides category persistence.
type CategoryGateway interface {
	List(ctx context.Context, sortKey string) ([]domain.Category, error)
	Filter(ctx context.Context, predicate Fields, sortKey string) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, fields Fields) (*domain.Category, error)
	Update(ctx context.Context, id string, fields Fields) (*domain.Category, error)
}

// InvitationGateway provides invitation persistence. Invitations have no
// lifecycle here beyond creation; acceptance happens in the identity provider.
type InvitationGateway interface {
	Create(ctx context.Context, fields Fields) (*domain.Invitation, error)
	Filter(ctx context.Context, predicate Fields, sortKey string) ([]domain.Invitation, error)
}

// Gateways bundles the per-entity gateways a driver exposes.
type Gateways struct {
	Tickets     TicketGateway
	Users       UserGateway
	Categories  CategoryGateway
	Invitations InvitationGateway
}
