package repository

import (
	"database/sql"
	"fmt"

	"github.com/roylobo/genai-portal/internal/models"
	"go.uber.org/zap"
)

// ResumeRepository handles resume persistence.
type ResumeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewResumeRepository creates a new resume repository.
func NewResumeRepository(db *sql.DB, logger *zap.Logger) *ResumeRepository {
	return &ResumeRepository{db: db, logger: logger}
}

const resumeColumns = `id, user_id, filename, experience_years, skills_analysis,
	job_matches, status, created_at`

// Create inserts a new resume record and assigns its generated id.
func (r *ResumeRepository) Create(resume *models.Resume) error {
	result, err := r.db.Exec(`
		INSERT INTO resumes (user_id, filename, experience_years, skills_analysis, job_matches, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		resume.UserID, resume.Filename, resume.ExperienceYears,
		resume.SkillsAnalysis, resume.JobMatches, resume.Status,
	)
	if err != nil {
		r.logger.Error("Failed to create resume", zap.Int64("user_id", resume.UserID), zap.Error(err))
		return fmt.Errorf("failed to create resume: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	resume.ID = id
	return nil
}

// ListByUser returns the user's resumes, newest first.
func (r *ResumeRepository) ListByUser(userID int64) ([]*models.Resume, error) {
	rows, err := r.db.Query(
		"SELECT "+resumeColumns+" FROM resumes WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		r.logger.Error("Failed to list resumes", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	return scanResumes(rows)
}

// Search returns the user's resumes filtered by a minimum experience and,
// when role is non-empty, a case-insensitive substring match against the
// stored job-match analysis.
func (r *ResumeRepository) Search(userID int64, role string, minExperience int) ([]*models.Resume, error) {
	query := "SELECT " + resumeColumns + " FROM resumes WHERE user_id = ? AND experience_years >= ?"
	args := []interface{}{userID, minExperience}

	if role != "" {
		query += " AND job_matches LIKE ? COLLATE NOCASE"
		args = append(args, "%"+role+"%")
	}
	query += " ORDER BY experience_years DESC, created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Error("Failed to search resumes",
			zap.Int64("user_id", userID),
			zap.String("role", role),
			zap.Error(err))
		return nil, fmt.Errorf("failed to search resumes: %w", err)
	}
	defer rows.Close()

	return scanResumes(rows)
}

func scanResumes(rows *sql.Rows) ([]*models.Resume, error) {
	var resumes []*models.Resume
	for rows.Next() {
		var resume models.Resume
		if err := rows.Scan(
			&resume.ID, &resume.UserID, &resume.Filename, &resume.ExperienceYears,
			&resume.SkillsAnalysis, &resume.JobMatches, &resume.Status,
			&resume.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, &resume)
	}
	return resumes, rows.Err()
}
