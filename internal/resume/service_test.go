package resume

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/models"
)

type stubOracle struct {
	responses []string
	err       error
	prompts   []string
}

func (s *stubOracle) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	response := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return response, nil
}

type mockResumeStore struct {
	created      []*models.Resume
	listResult   []*models.Resume
	searchResult []*models.Resume
	searchRole   string
	searchMinExp int
}

func (m *mockResumeStore) Create(resume *models.Resume) error {
	resume.ID = int64(len(m.created) + 1)
	m.created = append(m.created, resume)
	return nil
}

func (m *mockResumeStore) ListByUser(int64) ([]*models.Resume, error) {
	return m.listResult, nil
}

func (m *mockResumeStore) Search(_ int64, role string, minExperience int) ([]*models.Resume, error) {
	m.searchRole = role
	m.searchMinExp = minExperience
	return m.searchResult, nil
}

func TestService_Upload(t *testing.T) {
	oracle := &stubOracle{responses: []string{
		`{"name": "Jane Doe", "experience_years": 6}`,
		`[{"role": "Backend Developer", "match": 88, "fit": "High"}]`,
	}}
	store := &mockResumeStore{}
	svc, err := NewService(oracle, store, t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	text := "Jane Doe. Six years of Go and Python backend development."
	resume, err := svc.Upload(context.Background(), 3, "jane.txt", strings.NewReader(text))
	require.NoError(t, err)

	assert.Equal(t, int64(3), resume.UserID)
	assert.Equal(t, "jane.txt", resume.Filename)
	assert.Equal(t, "Analyzed", resume.Status)
	// Oracle responses stored raw, no parsing.
	assert.Equal(t, `{"name": "Jane Doe", "experience_years": 6}`, resume.SkillsAnalysis)
	assert.Equal(t, `[{"role": "Backend Developer", "match": 88, "fit": "High"}]`, resume.JobMatches)

	require.Len(t, oracle.prompts, 2)
	assert.Contains(t, oracle.prompts[0], "Analyze this resume and extract:")
	assert.Contains(t, oracle.prompts[0], text)
	// Job matching is chained on the skills analysis, not the raw resume.
	assert.Contains(t, oracle.prompts[1], "Available job roles:")
	assert.Contains(t, oracle.prompts[1], `{"name": "Jane Doe", "experience_years": 6}`)
	assert.Contains(t, oracle.prompts[1], "15. Operations Manager")
}

func TestService_Upload_OracleFailureAborts(t *testing.T) {
	oracle := &stubOracle{err: errors.New("model offline")}
	store := &mockResumeStore{}
	svc, err := NewService(oracle, store, t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), 3, "jane.txt", strings.NewReader("resume text"))
	assert.Error(t, err)
	assert.Empty(t, store.created)
}

func TestService_Upload_EmptyResume(t *testing.T) {
	svc, err := NewService(&stubOracle{responses: []string{"x"}}, &mockResumeStore{}, t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	_, err = svc.Upload(context.Background(), 3, "blank.txt", strings.NewReader("  "))
	assert.Error(t, err)
}

func TestService_Search_PassesFilters(t *testing.T) {
	store := &mockResumeStore{searchResult: []*models.Resume{{ID: 1, Filename: "senior.pdf"}}}
	svc, err := NewService(&stubOracle{responses: []string{""}}, store, t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	results, err := svc.Search(3, "DevOps Engineer", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "DevOps Engineer", store.searchRole)
	assert.Equal(t, 5, store.searchMinExp)
}
