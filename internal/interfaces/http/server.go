// Package http provides the HTTP adapter for the portal: a thin layer that
// translates requests into service calls.
package http

import (
	"context"
	"fmt"
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

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	CORSOrigin      string
	MaxUploadSizeMB int64
}

// DefaultServerConfig returns default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		CORSOrigin:      "http://localhost:5173",
		MaxUploadSizeMB: 20,
	}
}

// Server is the HTTP server adapter.
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	logger     *zap.Logger
}

// NewServer creates a new HTTP server wired to the given services.
func NewServer(
	config ServerConfig,
	authService *auth.Service,
	documentService *document.Service,
	ticketService *ticket.Service,
	resumeService *resume.Service,
	fieldExtractor *extractor.Extractor,
	logger *zap.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.MaxMultipartMemory = config.MaxUploadSizeMB << 20

	server := &Server{
		config: config,
		router: router,
		logger: logger,
	}

	server.setupMiddleware()

	handlers := NewHandlers(authService, documentService, ticketService, resumeService, fieldExtractor, logger)
	server.setupRoutes(handlers)

	return server
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(s.corsMiddleware())
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", s.config.CORSOrigin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) setupRoutes(handlers *Handlers) {
	s.router.GET("/health", handlers.HealthCheck)

	// Auth
	s.router.POST("/register", handlers.Register)
	s.router.POST("/login", handlers.Login)

	// Document workflow
	s.router.POST("/upload", handlers.UploadDocument)
	s.router.GET("/results", handlers.ListResults)
	s.router.POST("/query", handlers.QueryDocuments)
	s.router.GET("/download_docs", handlers.DownloadDocuments)
	s.router.POST("/extract_fields", handlers.ExtractFields)

	// IT tickets
	s.router.POST("/create_ticket", handlers.CreateTicket)
	s.router.GET("/tickets", handlers.ListTickets)
	s.router.POST("/query_ticket", handlers.QueryTickets)
	s.router.POST("/resolve_ticket", handlers.ResolveTicket)
	s.router.POST("/reopen_ticket", handlers.ReopenTicket)
	s.router.POST("/escalate_ticket", handlers.EscalateTicket)
	s.router.GET("/download_csv", handlers.DownloadTicketsCSV)
	s.router.GET("/download_xlsx", handlers.DownloadTicketsXLSX)

	// Talent management
	s.router.POST("/upload_resume", handlers.UploadResume)
	s.router.GET("/resumes", handlers.ListResumes)
	s.router.POST("/search_candidates", handlers.SearchCandidates)
}

// Start starts the HTTP server and blocks until ctx is cancelled or the
// server fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing).
func (s *Server) Router() *gin.Engine {
	return s.router
}
