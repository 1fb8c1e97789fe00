package models

import "time"

// Ticket lifecycle states.
const (
	TicketStatusOpen      = "Open"
	TicketStatusResolved  = "Resolved"
	TicketStatusReopened  = "Reopened"
	TicketStatusEscalated = "Escalated"
)

// Ticket reporting contexts.
const (
	TicketTypeSelf   = "self"
	TicketTypeOther  = "other"
	TicketTypeSystem = "system"
)

// Ticket is an IT support ticket with its AI triage results attached.
type Ticket struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Category         string    `json:"category"`
	Description      string    `json:"description"`
	AISummary        string    `json:"ai_summary"`
	AISuggestion     string    `json:"ai_suggestion"`
	Status           string    `json:"status"`
	AffectedUser     string    `json:"affected_user,omitempty"`
	TicketType       string    `json:"ticket_type"`
	EscalationReason string    `json:"escalation_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
