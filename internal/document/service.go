package document

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/classifier"
	"github.com/roylobo/genai-portal/internal/extractor"
	"github.com/roylobo/genai-portal/internal/llm"
	"github.com/roylobo/genai-portal/internal/models"
	"github.com/roylobo/genai-portal/internal/workflow"
	"github.com/roylobo/genai-portal/pkg/utils"
)

const summaryPromptLimit = 2000

// AnalysisStore is the persistence surface the document service needs.
type AnalysisStore interface {
	Create(result *models.AnalysisResult) error
	List() ([]*models.AnalysisResult, error)
	Summaries() ([]string, error)
}

// Service runs the document intake pipeline: store the upload, extract text,
// summarize, classify, scan entities and compute the workflow decision.
type Service struct {
	oracle    llm.Oracle
	store     AnalysisStore
	uploadDir string
	logger    *zap.Logger
}

// NewService creates a new document service. uploadDir is created if missing.
func NewService(oracle llm.Oracle, store AnalysisStore, uploadDir string, logger *zap.Logger) (*Service, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Service{
		oracle:    oracle,
		store:     store,
		uploadDir: uploadDir,
		logger:    logger,
	}, nil
}

// Process saves the uploaded document and runs the full analysis pipeline.
// An oracle failure degrades to an empty summary; classification and the
// workflow decision never depend on the oracle.
func (s *Service) Process(ctx context.Context, filename string, src io.Reader) (*models.AnalysisResult, error) {
	storedPath, err := s.saveUpload(filename, src)
	if err != nil {
		return nil, err
	}

	text, err := ExtractText(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", filename, err)
	}

	summary := s.summarize(ctx, text)
	department := classifier.Department(text)
	entities := extractor.ScanEntities(text)

	decision := workflow.Generate(department, workflow.Fields{
		Amounts: entities.Amounts,
		Raw:     text,
		Summary: summary,
	})

	entitiesJSON, err := json.Marshal(entities)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entities: %w", err)
	}
	checklistJSON, err := json.Marshal(decision.Checklist)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checklist: %w", err)
	}

	result := &models.AnalysisResult{
		Filename:          filename,
		StoredPath:        storedPath,
		Department:        department,
		Summary:           summary,
		Entities:          string(entitiesJSON),
		WorkflowOutcome:   decision.Outcome,
		WorkflowChecklist: string(checklistJSON),
	}
	if err := s.store.Create(result); err != nil {
		return nil, fmt.Errorf("failed to store analysis result: %w", err)
	}

	s.logger.Info("Document analyzed",
		zap.String("filename", filename),
		zap.String("department", department),
		zap.String("outcome", decision.Outcome))

	return result, nil
}

// Results returns stored analysis results whose source files still exist in
// the upload directory; deleting an upload drops it from the listing.
func (s *Service) Results() ([]*models.AnalysisResult, error) {
	all, err := s.store.List()
	if err != nil {
		return nil, err
	}

	results := make([]*models.AnalysisResult, 0, len(all))
	for _, r := range all {
		if r.StoredPath == "" {
			continue
		}
		if _, err := os.Stat(r.StoredPath); err != nil {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// Query answers a free-form question against the stored document summaries.
func (s *Service) Query(ctx context.Context, question string) (string, error) {
	summaries, err := s.store.Summaries()
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

	answer, err := s.oracle.Complete(ctx, fmt.Sprintf("Answer this based on docs:\n%s\nQuestion: %s", all, question))
	if err != nil {
		return "", fmt.Errorf("failed to answer query: %w", err)
	}
	return answer, nil
}

// ExportCSV writes the current results as CSV.
func (s *Service) ExportCSV(w io.Writer) error {
	results, err := s.Results()
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no data available")
	}

	writer := csv.NewWriter(w)
	header := []string{"id", "filename", "department", "summary", "entities", "workflow_outcome", "workflow_checklist", "created_at"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range results {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.Filename,
			r.Department,
			r.Summary,
			r.Entities,
			r.WorkflowOutcome,
			r.WorkflowChecklist,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (s *Service) saveUpload(filename string, src io.Reader) (string, error) {
	safe := utils.SanitizeFilename(filename)
	if safe == "" {
		return "", fmt.Errorf("invalid filename: %s", filename)
	}

	storedPath := filepath.Join(s.uploadDir, uuid.NewString()+"_"+safe)
	dst, err := os.Create(storedPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(storedPath)
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return storedPath, nil
}

func (s *Service) summarize(ctx context.Context, text string) string {
	prompt := text
	if runes := []rune(prompt); len(runes) > summaryPromptLimit {
		prompt = string(runes[:summaryPromptLimit])
	}

	summary, err := s.oracle.Complete(ctx, "Summarize this document:\n"+prompt)
	if err != nil {
		s.logger.Warn("Summary generation failed", zap.Error(err))
		return ""
	}
	return summary
}
