package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/ticket"
)

// CreateTicketRequest is the ticket creation form.
type CreateTicketRequest struct {
	UserID       int64  `form:"user_id" binding:"required"`
	Description  string `form:"description" binding:"required"`
	AffectedUser string `form:"affected_user"`
	TicketType   string `form:"ticket_type"`
}

// CreateTicketResponse carries the triage outcome back to the caller.
type CreateTicketResponse struct {
	TicketID   int64  `json:"ticket_id"`
	Category   string `json:"category"`
	Summary    string `json:"summary"`
	Suggestion string `json:"suggestion"`
	Status     string `json:"status"`
}

// CreateTicket handles POST /create_ticket.
func (h *Handlers) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "user_id and description are required")
		return
	}

	t, err := h.ticketService.Create(c.Request.Context(), req.UserID, req.Description, req.AffectedUser, req.TicketType)
	if err != nil {
		h.logger.Error("Ticket creation failed", zap.Int64("user_id", req.UserID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "ticket creation failed")
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: CreateTicketResponse{
			TicketID:   t.ID,
			Category:   t.Category,
			Summary:    t.AISummary,
			Suggestion: t.AISuggestion,
			Status:     t.Status,
		},
	})
}

// ListTickets handles GET /tickets.
func (h *Handlers) ListTickets(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	tickets, err := h.ticketService.List(userID)
	if err != nil {
		h.logger.Error("Failed to list tickets", zap.Int64("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list tickets")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: tickets})
}

// TicketQueryRequest is the ticket Q&A form.
type TicketQueryRequest struct {
	UserID   int64  `form:"user_id" binding:"required"`
	Question string `form:"question" binding:"required"`
}

// QueryTickets handles POST /query_ticket.
func (h *Handlers) QueryTickets(c *gin.Context) {
	var req TicketQueryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "user_id and question are required")
		return
	}

	answer, err := h.ticketService.Query(c.Request.Context(), req.UserID, req.Question)
	if err != nil {
		h.logger.Error("Ticket query failed", zap.Int64("user_id", req.UserID), zap.Error(err))
		respondError(c, http.StatusServiceUnavailable, "query failed")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"answer": answer}})
}

// TicketActionRequest is the shared form for lifecycle transitions.
type TicketActionRequest struct {
	TicketID int64  `form:"ticket_id" binding:"required"`
	UserID   int64  `form:"user_id" binding:"required"`
	Reason   string `form:"reason"`
	// escalation_reason is the original field name on /escalate_ticket.
	EscalationReason string `form:"escalation_reason"`
}

// ResolveTicket handles POST /resolve_ticket.
func (h *Handlers) ResolveTicket(c *gin.Context) {
	var req TicketActionRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ticket_id and user_id are required")
		return
	}

	err := h.ticketService.Resolve(req.TicketID, req.UserID)
	switch {
	case errors.Is(err, ticket.ErrTicketNotFound):
		respondError(c, http.StatusNotFound, "Ticket not found or unauthorized")
		return
	case errors.Is(err, ticket.ErrNotAffectedUser):
		respondError(c, http.StatusForbidden, "Only the affected user can resolve this ticket")
		return
	case err != nil:
		h.logger.Error("Ticket resolve failed", zap.Int64("ticket_id", req.TicketID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to resolve ticket")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"message": "Ticket marked as resolved"}})
}

// ReopenTicket handles POST /reopen_ticket.
func (h *Handlers) ReopenTicket(c *gin.Context) {
	var req TicketActionRequest
	if err := c.ShouldBind(&req); err != nil || req.Reason == "" {
		respondError(c, http.StatusBadRequest, "ticket_id, user_id and reason are required")
		return
	}

	err := h.ticketService.Reopen(req.TicketID, req.UserID, req.Reason)
	switch {
	case errors.Is(err, ticket.ErrTicketNotFound):
		respondError(c, http.StatusNotFound, "Ticket not found or unauthorized")
		return
	case err != nil:
		h.logger.Error("Ticket reopen failed", zap.Int64("ticket_id", req.TicketID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to reopen ticket")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"message": "Ticket reopened successfully"}})
}

// EscalateTicket handles POST /escalate_ticket.
func (h *Handlers) EscalateTicket(c *gin.Context) {
	var req TicketActionRequest
	if err := c.ShouldBind(&req); err != nil || req.EscalationReason == "" {
		respondError(c, http.StatusBadRequest, "ticket_id, user_id and escalation_reason are required")
		return
	}

	err := h.ticketService.Escalate(req.TicketID, req.UserID, req.EscalationReason)
	switch {
	case errors.Is(err, ticket.ErrTicketNotFound):
		respondError(c, http.StatusNotFound, "Ticket not found or unauthorized")
		return
	case err != nil:
		h.logger.Error("Ticket escalate failed", zap.Int64("ticket_id", req.TicketID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to escalate ticket")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"message": "Ticket escalated successfully"}})
}

// DownloadTicketsCSV handles GET /download_csv.
func (h *Handlers) DownloadTicketsCSV(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.ticketService.ExportCSV(userID, &buf); err != nil {
		if errors.Is(err, ticket.ErrNoTickets) {
			respondError(c, http.StatusNotFound, "No tickets")
			return
		}
		h.logger.Error("Ticket CSV export failed", zap.Int64("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "export failed")
		return
	}

	filename := fmt.Sprintf("user_%d_tickets.csv", userID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// DownloadTicketsXLSX handles GET /download_xlsx.
func (h *Handlers) DownloadTicketsXLSX(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.ticketService.ExportXLSX(userID, &buf); err != nil {
		if errors.Is(err, ticket.ErrNoTickets) {
			respondError(c, http.StatusNotFound, "No tickets")
			return
		}
		h.logger.Error("Ticket XLSX export failed", zap.Int64("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "export failed")
		return
	}

	filename := fmt.Sprintf("user_%d_tickets.xlsx", userID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func queryUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		respondError(c, http.StatusBadRequest, "user_id is required")
		return 0, false
	}
	return userID, true
}
