package repository

import (
	"database/sql"
	"fmt"

	"github.com/roylobo/genai-portal/internal/models"
	"go.uber.org/zap"
)

// AnalysisRepository handles document analysis result persistence.
type AnalysisRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAnalysisRepository creates a new analysis repository.
func NewAnalysisRepository(db *sql.DB, logger *zap.Logger) *AnalysisRepository {
	return &AnalysisRepository{db: db, logger: logger}
}

// Create inserts a new analysis result and assigns its generated id.
func (r *AnalysisRepository) Create(result *models.AnalysisResult) error {
	res, err := r.db.Exec(`
		INSERT INTO analysis_results (filename, stored_path, department, summary,
			entities, workflow_outcome, workflow_checklist)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.Filename, result.StoredPath, result.Department, result.Summary,
		result.Entities, result.WorkflowOutcome, result.WorkflowChecklist,
	)
	if err != nil {
		r.logger.Error("Failed to create analysis result",
			zap.String("filename", result.Filename),
			zap.Error(err))
		return fmt.Errorf("failed to create analysis result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	result.ID = id
	return nil
}

// List returns all analysis results, newest first.
func (r *AnalysisRepository) List() ([]*models.AnalysisResult, error) {
	rows, err := r.db.Query(`
		SELECT id, filename, stored_path, department, summary, entities,
			workflow_outcome, workflow_checklist, created_at
		FROM analysis_results
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		r.logger.Error("Failed to list analysis results", zap.Error(err))
		return nil, fmt.Errorf("failed to list analysis results: %w", err)
	}
	defer rows.Close()

	var results []*models.AnalysisResult
	for rows.Next() {
		var result models.AnalysisResult
		if err := rows.Scan(
			&result.ID, &result.Filename, &result.StoredPath, &result.Department,
			&result.Summary, &result.Entities, &result.WorkflowOutcome,
			&result.WorkflowChecklist, &result.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis result: %w", err)
		}
		results = append(results, &result)
	}
	return results, rows.Err()
}

// Summaries returns the stored summaries of all analyzed documents, newest
// first, for natural-language queries over document history.
func (r *AnalysisRepository) Summaries() ([]string, error) {
	rows, err := r.db.Query(
		"SELECT summary FROM analysis_results ORDER BY created_at DESC, id DESC")
	if err != nil {
		r.logger.Error("Failed to list summaries", zap.Error(err))
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []string
	for rows.Next() {
		var summary string
		if err := rows.Scan(&summary); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// StoredPaths returns the stored file path for every analyzed document, keyed
// by original filename, for bulk download.
func (r *AnalysisRepository) StoredPaths() (map[string]string, error) {
	rows, err := r.db.Query("SELECT filename, stored_path FROM analysis_results")
	if err != nil {
		r.logger.Error("Failed to list stored paths", zap.Error(err))
		return nil, fmt.Errorf("failed to list stored paths: %w", err)
	}
	defer rows.Close()

	paths := make(map[string]string)
	for rows.Next() {
		var filename, storedPath string
		if err := rows.Scan(&filename, &storedPath); err != nil {
			return nil, fmt.Errorf("failed to scan stored path: %w", err)
		}
		paths[filename] = storedPath
	}
	return paths, rows.Err()
}
