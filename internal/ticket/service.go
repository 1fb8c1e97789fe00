package ticket

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/classifier"
	"github.com/roylobo/genai-portal/internal/llm"
	"github.com/roylobo/genai-portal/internal/models"
)

const summaryPromptLimit = 2000

// Sentinel errors exposed to the transport layer.
var (
	ErrTicketNotFound  = errors.New("ticket not found or unauthorized")
	ErrNotAffectedUser = errors.New("only the affected user can resolve this ticket")
	ErrNoTickets       = errors.New("no tickets")
)

// TicketStore is the persistence surface the ticket service needs.
type TicketStore interface {
	Create(ticket *models.Ticket) error
	ListByUser(userID int64) ([]*models.Ticket, error)
	GetByIDForUser(id, userID int64) (*models.Ticket, error)
	UpdateStatus(id int64, status, escalationReason string) error
	SummariesByUser(userID int64) ([]string, error)
}

// UserStore resolves the reporting user for ticket context lines.
type UserStore interface {
	GetByID(id int64) (*models.User, error)
}

// Suggester produces a troubleshooting suggestion for a categorized issue.
type Suggester interface {
	Suggest(ctx context.Context, category, description string) (string, error)
}

// Service handles the IT support ticket lifecycle.
type Service struct {
	oracle    llm.Oracle
	suggester Suggester
	tickets   TicketStore
	users     UserStore
	logger    *zap.Logger
}

// NewService creates a new ticket service.
func NewService(oracle llm.Oracle, suggester Suggester, tickets TicketStore, users UserStore, logger *zap.Logger) *Service {
	return &Service{
		oracle:    oracle,
		suggester: suggester,
		tickets:   tickets,
		users:     users,
		logger:    logger,
	}
}

// Create classifies and triages a new ticket. The stored description carries
// a reporting-context line; classification always runs on the bare
// description the user typed. Oracle failures degrade to empty summary and
// suggestion, never block ticket creation.
func (s *Service) Create(ctx context.Context, userID int64, description, affectedUser, ticketType string) (*models.Ticket, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reporter: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("unknown user %d", userID)
	}

	if ticketType == "" {
		ticketType = models.TicketTypeSelf
	}

	contextLine := ticketContext(user.Username, affectedUser, ticketType)
	fullDescription := fmt.Sprintf("%s\n\nIssue: %s", contextLine, description)

	category := classifier.TicketCategory(description)
	summary := s.summarize(ctx, fullDescription)

	suggestion, err := s.suggester.Suggest(ctx, category, description)
	if err != nil {
		s.logger.Warn("Suggestion generation failed", zap.Error(err))
		suggestion = ""
	}

	ticket := &models.Ticket{
		UserID:       userID,
		Category:     category,
		Description:  fullDescription,
		AISummary:    summary,
		AISuggestion: suggestion,
		Status:       models.TicketStatusOpen,
		AffectedUser: affectedUser,
		TicketType:   ticketType,
	}
	if err := s.tickets.Create(ticket); err != nil {
		return nil, fmt.Errorf("failed to store ticket: %w", err)
	}

	s.logger.Info("Ticket created",
		zap.Int64("id", ticket.ID),
		zap.Int64("user_id", userID),
		zap.String("category", category),
		zap.String("ticket_type", ticketType))

	return ticket, nil
}

// List returns the user's tickets, newest first.
func (s *Service) List(userID int64) ([]*models.Ticket, error) {
	return s.tickets.ListByUser(userID)
}

// Query answers a free-form question against the user's ticket summaries.
func (s *Service) Query(ctx context.Context, userID int64, question string) (string, error) {
	summaries, err := s.tickets.SummariesByUser(userID)
	if err != nil {
		return "", err
	}

	var all string
	for i, summary := range summaries {
		if i > 0 {
			all += " "
		}
		all += summary
	}

	prompt := fmt.Sprintf("User submitted IT tickets summaries:\n%s\nQuestion: %s", all, question)
	answer, err := s.oracle.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to answer ticket query: %w", err)
	}
	return answer, nil
}

// Resolve marks a ticket resolved. Only the affected user may resolve: the
// reporter when the ticket is self-reported or has no affected user, or the
// named affected user otherwise.
func (s *Service) Resolve(ticketID, userID int64) error {
	ticket, err := s.tickets.GetByIDForUser(ticketID, userID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return ErrTicketNotFound
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return ErrTicketNotFound
	}

	canResolve := ticket.TicketType == models.TicketTypeSelf ||
		ticket.AffectedUser == "" ||
		ticket.AffectedUser == user.Username
	if !canResolve {
		return ErrNotAffectedUser
	}

	return s.tickets.UpdateStatus(ticketID, models.TicketStatusResolved, ticket.EscalationReason)
}

// Reopen moves a resolved ticket back to the queue, recording the reason.
func (s *Service) Reopen(ticketID, userID int64, reason string) error {
	ticket, err := s.tickets.GetByIDForUser(ticketID, userID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return ErrTicketNotFound
	}
	return s.tickets.UpdateStatus(ticketID, models.TicketStatusReopened, reason)
}

// Escalate raises a ticket to the escalation queue, recording the reason.
func (s *Service) Escalate(ticketID, userID int64, reason string) error {
	ticket, err := s.tickets.GetByIDForUser(ticketID, userID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return ErrTicketNotFound
	}
	return s.tickets.UpdateStatus(ticketID, models.TicketStatusEscalated, reason)
}

// ExportCSV writes the user's tickets as CSV.
func (s *Service) ExportCSV(userID int64, w io.Writer) error {
	tickets, err := s.tickets.ListByUser(userID)
	if err != nil {
		return err
	}
	if len(tickets) == 0 {
		return ErrNoTickets
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ticketExportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range tickets {
		if err := writer.Write(ticketExportRow(t)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

var ticketExportHeader = []string{
	"id", "category", "description", "ai_summary", "ai_suggestion",
	"status", "affected_user", "ticket_type", "escalation_reason", "created_at",
}

func ticketExportRow(t *models.Ticket) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Category,
		t.Description,
		t.AISummary,
		t.AISuggestion,
		t.Status,
		t.AffectedUser,
		t.TicketType,
		t.EscalationReason,
		t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ticketContext(reporter, affectedUser, ticketType string) string {
	switch {
	case ticketType == models.TicketTypeSelf:
		return fmt.Sprintf("Self-reported by %s", reporter)
	case ticketType == models.TicketTypeOther && affectedUser != "":
		return fmt.Sprintf("Reported by %s for %s", reporter, affectedUser)
	case ticketType == models.TicketTypeSystem:
		if affectedUser == "" {
			affectedUser = "unknown user"
		}
		return fmt.Sprintf("System-generated ticket for %s", affectedUser)
	default:
		return fmt.Sprintf("Reported by %s", reporter)
	}
}

func (s *Service) summarize(ctx context.Context, fullDescription string) string {
	prompt := fullDescription
	if runes := []rune(prompt); len(runes) > summaryPromptLimit {
		prompt = string(runes[:summaryPromptLimit])
	}

	summary, err := s.oracle.Complete(ctx, "Summarize this IT ticket: "+prompt)
	if err != nil {
		s.logger.Warn("Ticket summary failed", zap.Error(err))
		return ""
	}
	return summary
}
