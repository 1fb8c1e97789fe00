package repository

import (
	"database/sql"
	"fmt"

	"github.com/roylobo/genai-portal/internal/models"
	"go.uber.org/zap"
)

// TicketRepository handles IT support ticket persistence.
type TicketRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTicketRepository creates a new ticket repository.
func NewTicketRepository(db *sql.DB, logger *zap.Logger) *TicketRepository {
	return &TicketRepository{db: db, logger: logger}
}

const ticketColumns = `id, user_id, category, description, ai_summary, ai_suggestion,
	status, affected_user, ticket_type, escalation_reason, created_at`

// Create inserts a new ticket and assigns its generated id.
func (r *TicketRepository) Create(ticket *models.Ticket) error {
	result, err := r.db.Exec(`
		INSERT INTO tickets (user_id, category, description, ai_summary, ai_suggestion,
			status, affected_user, ticket_type, escalation_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ticket.UserID, ticket.Category, ticket.Description, ticket.AISummary,
		ticket.AISuggestion, ticket.Status, ticket.AffectedUser, ticket.TicketType,
		ticket.EscalationReason,
	)
	if err != nil {
		r.logger.Error("Failed to create ticket", zap.Int64("user_id", ticket.UserID), zap.Error(err))
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	ticket.ID = id
	return nil
}

// ListByUser returns the user's tickets, newest first.
func (r *TicketRepository) ListByUser(userID int64) ([]*models.Ticket, error) {
	rows, err := r.db.Query(
		"SELECT "+ticketColumns+" FROM tickets WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		r.logger.Error("Failed to list tickets", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

// GetByIDForUser returns the ticket with the given id when it belongs to the
// user, or nil when no such ticket exists.
func (r *TicketRepository) GetByIDForUser(id, userID int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.QueryRow(
		"SELECT "+ticketColumns+" FROM tickets WHERE id = ? AND user_id = ?",
		id, userID,
	).Scan(
		&ticket.ID, &ticket.UserID, &ticket.Category, &ticket.Description,
		&ticket.AISummary, &ticket.AISuggestion, &ticket.Status,
		&ticket.AffectedUser, &ticket.TicketType, &ticket.EscalationReason,
		&ticket.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get ticket", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return &ticket, nil
}

// UpdateStatus moves a ticket to a new lifecycle state. escalationReason is
// only meaningful for escalations; pass "" otherwise.
func (r *TicketRepository) UpdateStatus(id int64, status, escalationReason string) error {
	result, err := r.db.Exec(
		"UPDATE tickets SET status = ?, escalation_reason = ? WHERE id = ?",
		status, escalationReason, id,
	)
	if err != nil {
		r.logger.Error("Failed to update ticket status",
			zap.Int64("id", id),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("failed to update ticket status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("ticket %d not found", id)
	}

	return nil
}

// SummariesByUser returns the AI summaries of the user's tickets, newest
// first, for natural-language queries over ticket history.
func (r *TicketRepository) SummariesByUser(userID int64) ([]string, error) {
	rows, err := r.db.Query(
		"SELECT ai_summary FROM tickets WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		r.logger.Error("Failed to list ticket summaries", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list ticket summaries: %w", err)
	}
	defer rows.Close()

	var summaries []string
	for rows.Next() {
		var summary string
		if err := rows.Scan(&summary); err != nil {
			return nil, fmt.Errorf("failed to scan ticket summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func scanTickets(rows *sql.Rows) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		if err := rows.Scan(
			&ticket.ID, &ticket.UserID, &ticket.Category, &ticket.Description,
			&ticket.AISummary, &ticket.AISuggestion, &ticket.Status,
			&ticket.AffectedUser, &ticket.TicketType, &ticket.EscalationReason,
			&ticket.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}
	return tickets, rows.Err()
}
