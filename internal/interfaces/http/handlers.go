package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/auth"
	"github.com/roylobo/genai-portal/internal/document"
	"github.com/roylobo/genai-portal/internal/extractor"
	"github.com/roylobo/genai-portal/internal/resume"
	"github.com/roylobo/genai-portal/internal/ticket"
)

// Handlers contains all HTTP request handlers.
type Handlers struct {
	authService     *auth.Service
	documentService *document.Service
	ticketService   *ticket.Service
	resumeService   *resume.Service
	extractor       *extractor.Extractor
	logger          *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	authService *auth.Service,
	documentService *document.Service,
	ticketService *ticket.Service,
	resumeService *resume.Service,
	fieldExtractor *extractor.Extractor,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		authService:     authService,
		documentService: documentService,
		ticketService:   ticketService,
		resumeService:   resumeService,
		extractor:       fieldExtractor,
		logger:          logger,
	}
}

// Response represents a standard JSON response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Error: message})
}
