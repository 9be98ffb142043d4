package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quickdesk/quickdesk/internal/domain"
	"github.com/quickdesk/quickdesk/internal/gateway"
)

// fakeTicketGateway is an in-memory TicketGateway with per-method error
// injection. It preserves insertion order on List/Filter, like a real driver
// delivering pre-sorted rows.
type fakeTicketGateway struct {
	tickets []domain.Ticket
	nextID  int

	listErr   error
	filterErr error
	getErr    error
	createErr error
	updateErr error

	lastSortKey string
}

func (f *fakeTicketGateway) List(_ context.Context, sortKey string) ([]domain.Ticket, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastSortKey = sortKey
	out := make([]domain.Ticket, len(f.tickets))
	copy(out, f.tickets)
	return out, nil
}

func (f *fakeTicketGateway) Filter(_ context.Context, predicate gateway.Fields, sortKey string) ([]domain.Ticket, error) {
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	f.lastSortKey = sortKey
	var out []domain.Ticket
	for _, t := range f.tickets {
		if email, ok := predicate["requester_email"]; ok && t.RequesterEmail != email {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTicketGateway) Get(_ context.Context, id string) (*domain.Ticket, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			t := f.tickets[i]
			return &t, nil
		}
	}
	return nil, errors.New("ticket not found")
}

func (f *fakeTicketGateway) Create(_ context.Context, fields gateway.Fields) (*domain.Ticket, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	t := domain.Ticket{
		ID:          fmt.Sprintf("t-%d", f.nextID),
		CreatedDate: time.Now(),
		LastReply:   time.Now(),
	}
	applyTicketFields(&t, fields)
	f.tickets = append(f.tickets, t)
	return &t, nil
}

func (f *fakeTicketGateway) Update(_ context.Context, id string, fields gateway.Fields) (*domain.Ticket, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			applyTicketFields(&f.tickets[i], fields)
			f.tickets[i].LastReply = time.Now()
			t := f.tickets[i]
			return &t, nil
		}
	}
	return nil, errors.New("ticket not found")
}

func applyTicketFields(t *domain.Ticket, fields gateway.Fields) {
	for key, val := range fields {
		switch key {
		case "title":
			t.Title = val.(string)
		case "description":
			t.Description = val.(string)
		case "status":
			t.Status = val.(domain.TicketStatus)
		case "priority":
			t.Priority = val.(domain.TicketPriority)
		case "category_id":
			t.CategoryID = val.(string)
		case "requester_email":
			t.RequesterEmail = val.(string)
		case "assigned_to":
			if val == nil {
				t.AssignedTo = nil
			} else {
				email := val.(string)
				t.AssignedTo = &email
			}
		case "resolution_notes":
			t.ResolutionNotes = val.(string)
		case "attachment_urls":
			t.AttachmentURLs = val.([]string)
		}
	}
}

type fakeUserGateway struct {
	users     []domain.User
	listErr   error
	filterErr error
	updateErr error
}

func (f *fakeUserGateway) List(_ context.Context, _ string) ([]domain.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeUserGateway) Filter(_ context.Context, predicate gateway.Fields, _ string) ([]domain.User, error) {
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	var out []domain.User
	for _, u := range f.users {
		if email, ok := predicate["email"]; ok && u.Email != email {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserGateway) Get(_ context.Context, id string) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, errors.New("user not found")
}

func (f *fakeUserGateway) Update(_ context.Context, id string, fields gateway.Fields) (*domain.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.users {
		if f.users[i].ID == id {
			if role, ok := fields["role"]; ok {
				f.users[i].Role = role.(domain.UserRole)
			}
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, errors.New("user not found")
}

type fakeCategoryGateway struct {
	categories []domain.Category
	nextID     int
	getErr     error
	createErr  error
	updateErr  error
	listErr    error
}

func (f *fakeCategoryGateway) List(_ context.Context, _ string) ([]domain.Category, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Category, len(f.categories))
	copy(out, f.categories)
	return out, nil
}

func (f *fakeCategoryGateway) Filter(_ context.Context, predicate gateway.Fields, _ string) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range f.categories {
		if active, ok := predicate["is_active"]; ok && c.IsActive != active.(bool) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryGateway) Get(_ context.Context, id string) (*domain.Category, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, errors.New("category not found")
}

func (f *fakeCategoryGateway) Create(_ context.Context, fields gateway.Fields) (*domain.Category, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	c := domain.Category{ID: fmt.Sprintf("c-%d", f.nextID), CreatedDate: time.Now()}
	applyCategoryFields(&c, fields)
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeCategoryGateway) Update(_ context.Context, id string, fields gateway.Fields) (*domain.Category, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			applyCategoryFields(&f.categories[i], fields)
			c := f.categories[i]
			return &c, nil
		}
	}
	return nil, errors.New("category not found")
}

func applyCategoryFields(c *domain.Category, fields gateway.Fields) {
	for key, val := range fields {
		switch key {
		case "name":
			c.Name = val.(string)
		case "color":
			c.Color = val.(string)
		case "is_active":
			c.IsActive = val.(bool)
		}
	}
}

type fakeInvitationGateway struct {
	invitations []domain.Invitation
	nextID      int
	createErr   error
}

func (f *fakeInvitationGateway) Create(_ context.Context, fields gateway.Fields) (*domain.Invitation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	inv := domain.Invitation{ID: fmt.Sprintf("inv-%d", f.nextID), CreatedDate: time.Now()}
	for key, val := range fields {
		switch key {
		case "email":
			inv.Email = val.(string)
		case "role":
			inv.Role = val.(domain.UserRole)
		case "invited_by":
			inv.InvitedBy = val.(string)
		case "message":
			inv.Message = val.(string)
		case "token_hash":
			inv.TokenHash = val.(string)
		case "expires_at":
			inv.ExpiresAt = val.(time.Time)
		}
	}
	f.invitations = append(f.invitations, inv)
	return &inv, nil
}

func (f *fakeInvitationGateway) Filter(_ context.Context, predicate gateway.Fields, _ string) ([]domain.Invitation, error) {
	var out []domain.Invitation
	for _, inv := range f.invitations {
		if email, ok := predicate["email"]; ok && inv.Email != email {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

// recordedSend captures one Send call.
type recordedSend struct {
	To      string
	Subject string
	Body    string
}

// fakeSender records sends and can be made to fail.
type fakeSender struct {
	sends   []recordedSend
	sendErr error
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sends = append(f.sends, recordedSend{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeSender) sentTo(email string) bool {
	for _, s := range f.sends {
		if strings.EqualFold(s.To, email) {
			return true
		}
	}
	return false
}
