package resume

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/document"
	"github.com/roylobo/genai-portal/internal/llm"
	"github.com/roylobo/genai-portal/internal/models"
	"github.com/roylobo/genai-portal/pkg/utils"
)

const skillsPromptLimit = 3000

const skillsPromptTemplate = `Analyze this resume and extract:
1. Candidate name
2. Years of experience
3. Technical skills (programming languages, tools, frameworks)
4. Soft skills (communication, leadership, etc.)
5. Education background
6. Previous job roles

Resume: %s

Return as JSON format:
{
    "name": "candidate name",
    "experience_years": number,
    "technical_skills": ["skill1", "skill2"],
    "soft_skills": ["skill1", "skill2"],
    "education": "degree and institution",
    "previous_roles": ["role1", "role2"]
}`

const jobMatchingPromptTemplate = `Based on this candidate profile, analyze their fit for different job roles:

%s

Available job roles:
1. Frontend Developer (React, Vue, Angular, JavaScript, HTML, CSS)
2. Backend Developer (Python, Java, Node.js, SQL, APIs)
3. Full Stack Developer (Frontend + Backend skills)
4. Data Analyst (SQL, Python, Excel, Tableau, PowerBI)
5. DevOps Engineer (Docker, Kubernetes, AWS, CI/CD)
6. UI/UX Designer (Figma, Adobe, User Research, Prototyping)
7. Project Manager (Agile, Scrum, Leadership, Communication)
8. Business Analyst (Requirements, Documentation, Stakeholder Management)
9. QA Engineer (Testing, Automation, Selenium, JUnit)
10. Support Engineer (Customer Service, Technical Support, Troubleshooting)
11. Sales Executive (Sales, CRM, Communication, Negotiation)
12. Marketing Specialist (Digital Marketing, SEO, Social Media, Analytics)
13. Finance Analyst (Accounting, Excel, Financial Modeling, Analysis)
14. HR Specialist (Recruitment, Employee Relations, HRIS, Compliance)
15. Operations Manager (Process Improvement, Team Management, Logistics)

Return ONLY a JSON array with this exact format:
[
  {
    "role": "Role Name",
    "match": 85,
    "fit": "High"
  },
  {
    "role": "Role Name",
    "match": 72,
    "fit": "Medium"
  }
]

Rules:
- Return maximum 3 best-fit roles
- Match percentage should be 0-100
- Fit should be "High" (80+), "Medium" (60-79), or "Low" (below 60)
- Only return the JSON array, no other text`

// ResumeStore is the persistence surface the resume service needs.
type ResumeStore interface {
	Create(resume *models.Resume) error
	ListByUser(userID int64) ([]*models.Resume, error)
	Search(userID int64, role string, minExperience int) ([]*models.Resume, error)
}

// Service runs the resume intake pipeline: store the upload, extract text,
// analyze skills and match against the role catalog. The oracle's responses
// are stored raw; no schema is imposed on them.
type Service struct {
	oracle     llm.Oracle
	store      ResumeStore
	resumesDir string
	logger     *zap.Logger
}

// NewService creates a new resume service. resumesDir is created if missing.
func NewService(oracle llm.Oracle, store ResumeStore, resumesDir string, logger *zap.Logger) (*Service, error) {
	if err := os.MkdirAll(resumesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create resumes dir: %w", err)
	}
	return &Service{
		oracle:     oracle,
		store:      store,
		resumesDir: resumesDir,
		logger:     logger,
	}, nil
}

// Upload saves and analyzes a resume. Unlike the document flow, analysis
// failures here are surfaced: a resume without its analyses is not worth
// storing.
func (s *Service) Upload(ctx context.Context, userID int64, filename string, src io.Reader) (*models.Resume, error) {
	safe := utils.SanitizeFilename(filename)
	if safe == "" {
		return nil, fmt.Errorf("invalid filename: %s", filename)
	}

	storedPath := filepath.Join(s.resumesDir, uuid.NewString()+"_"+safe)
	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	dst.Close()

	text, err := document.ExtractText(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", filename, err)
	}

	excerpt := text
	if runes := []rune(excerpt); len(runes) > skillsPromptLimit {
		excerpt = string(runes[:skillsPromptLimit])
	}

	skillsAnalysis, err := s.oracle.Complete(ctx, fmt.Sprintf(skillsPromptTemplate, excerpt))
	if err != nil {
		return nil, fmt.Errorf("skills analysis failed: %w", err)
	}

	jobMatches, err := s.oracle.Complete(ctx, fmt.Sprintf(jobMatchingPromptTemplate, skillsAnalysis))
	if err != nil {
		return nil, fmt.Errorf("job matching failed: %w", err)
	}

	resume := &models.Resume{
		UserID:         userID,
		Filename:       filename,
		SkillsAnalysis: skillsAnalysis,
		JobMatches:     jobMatches,
		Status:         "Analyzed",
	}
	if err := s.store.Create(resume); err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}

	s.logger.Info("Resume analyzed",
		zap.Int64("id", resume.ID),
		zap.Int64("user_id", userID),
		zap.String("filename", filename))

	return resume, nil
}

// List returns the user's resumes, newest first.
func (s *Service) List(userID int64) ([]*models.Resume, error) {
	return s.store.ListByUser(userID)
}

// Search finds the user's resumes matching a role substring and a minimum
// experience.
func (s *Service) Search(userID int64, role string, minExperience int) ([]*models.Resume, error) {
	return s.store.Search(userID, role, minExperience)
}
