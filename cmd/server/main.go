package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/auth"
	"github.com/roylobo/genai-portal/internal/config"
	"github.com/roylobo/genai-portal/internal/document"
	"github.com/roylobo/genai-portal/internal/extractor"
	httpserver "github.com/roylobo/genai-portal/internal/interfaces/http"
	"github.com/roylobo/genai-portal/internal/itsupport"
	"github.com/roylobo/genai-portal/internal/llm"
	"github.com/roylobo/genai-portal/internal/repository"
	"github.com/roylobo/genai-portal/internal/resume"
	"github.com/roylobo/genai-portal/internal/ticket"
	"github.com/roylobo/genai-portal/pkg/database"
	"github.com/roylobo/genai-portal/pkg/utils"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting GenAI Portal",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port),
		zap.String("llm_provider", cfg.LLM.Provider))

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("Failed to create database directory", zap.Error(err))
		}
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	oracle, err := buildOracle(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize language model client", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db.DB, logger)
	ticketRepo := repository.NewTicketRepository(db.DB, logger)
	resumeRepo := repository.NewResumeRepository(db.DB, logger)
	analysisRepo := repository.NewAnalysisRepository(db.DB, logger)

	authService := auth.NewService(userRepo, logger)

	documentService, err := document.NewService(oracle, analysisRepo, cfg.Upload.Dir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize document service", zap.Error(err))
	}

	suggester := itsupport.NewGenerator(oracle, logger)
	ticketService := ticket.NewService(oracle, suggester, ticketRepo, userRepo, logger)

	resumeService, err := resume.NewService(oracle, resumeRepo, cfg.Upload.ResumesDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize resume service", zap.Error(err))
	}

	fieldExtractor := extractor.New(oracle, logger)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		CORSOrigin:      cfg.Server.CORSOrigin,
		MaxUploadSizeMB: cfg.Upload.MaxSizeMB,
	}, authService, documentService, ticketService, resumeService, fieldExtractor, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down server...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// buildOracle constructs the configured language-model client wrapped in a
// circuit breaker.
func buildOracle(cfg *config.Config, logger *zap.Logger) (llm.Oracle, error) {
	var inner llm.Oracle
	switch cfg.LLM.Provider {
	case config.ProviderOllama:
		inner = llm.NewOllamaClient(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.Timeout, logger)
	case config.ProviderOpenAI:
		inner = llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Temperature, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLM.Provider)
	}
	return llm.NewBreaker(inner, logger), nil
}
