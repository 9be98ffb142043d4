package notify

import (
	"fmt"
	"strings"

	"github.com/quickdesk/quickdesk/internal/domain"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// AssignmentMessage notifies the new assignee.
func AssignmentMessage(ticket *domain.Ticket, assigneeEmail string) Message {
	return Message{
		To:      assigneeEmail,
		Subject: fmt.Sprintf("Ticket Assigned: %s", ticket.Title),
		Body: fmt.Sprintf(
			"You have been assigned a new support ticket.\n\nTicket: %s\nRequester: %s\n\nPlease review and respond as soon as possible.",
			ticket.Title, ticket.RequesterEmail),
	}
}

// StatusUpdateMessage notifies the requester of the new status and, when
// present, the resolution notes.
func StatusUpdateMessage(ticket *domain.Ticket, newStatus domain.TicketStatus, notes string) Message {
	notesBlock := ""
	if notes != "" {
		notesBlock = fmt.Sprintf("Resolution Notes: %s\n\n", notes)
	}
	return Message{
		To:      ticket.RequesterEmail,
		Subject: fmt.Sprintf("Ticket Status Updated: %s", ticket.Title),
		Body: fmt.Sprintf(
			"Your support ticket status has been updated to: %s\n\n%sTicket: %s",
			newStatus.Humanize(), notesBlock, ticket.Title),
	}
}

// CreationMessage confirms ticket creation to the requester.
func CreationMessage(ticket *domain.Ticket) Message {
	return Message{
		To:      ticket.RequesterEmail,
		Subject: fmt.Sprintf("Ticket Created: %s", ticket.Title),
		Body: fmt.Sprintf(
			"Your support ticket %q has been created successfully. We'll get back to you soon!\n\nTicket ID: %s",
			ticket.Title, ticket.ID),
	}
}

// InvitationMessage renders the invite email. appURL is the address the
// invitee signs in at; inviterName falls back to the inviter email.
func InvitationMessage(invitation *domain.Invitation, inviterName, appURL string) Message {
	roleName := "User"
	if invitation.Role == domain.UserRoleAdmin {
		roleName = "Administrator"
	}

	var b strings.Builder
	b.WriteString("Hello!\n\n")
	fmt.Fprintf(&b, "You've been invited to join QuickDesk as a %s.\n\n", roleName)
	if invitation.Message != "" {
		fmt.Fprintf(&b, "Personal message from %s:\n%q\n\n", inviterName, invitation.Message)
	}
	b.WriteString("QuickDesk is a help desk system where you can create and manage support tickets. To get started:\n\n")
	b.WriteString("1. Click the link below to access QuickDesk\n")
	fmt.Fprintf(&b, "2. Sign in with your Google account using the email: %s\n", invitation.Email)
	b.WriteString("3. Start creating and managing tickets\n\n")
	fmt.Fprintf(&b, "Access QuickDesk: %s\n\n", appURL)
	b.WriteString("This invitation expires in 7 days.\n\nWelcome to the team!\n\n---\nQuickDesk Support Team")

	return Message{
		To:      invitation.Email,
		Subject: "You're invited to join QuickDesk",
		Body:    b.String(),
	}
}
