package document

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/models"
)

type stubOracle struct {
	response string
	err      error
	prompts  []string
}

func (s *stubOracle) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type mockAnalysisStore struct {
	created   []*models.AnalysisResult
	results   []*models.AnalysisResult
	summaries []string
	listErr   error
}

func (m *mockAnalysisStore) Create(result *models.AnalysisResult) error {
	result.ID = int64(len(m.created) + 1)
	m.created = append(m.created, result)
	return nil
}

func (m *mockAnalysisStore) List() ([]*models.AnalysisResult, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.results, nil
}

func (m *mockAnalysisStore) Summaries() ([]string, error) {
	return m.summaries, nil
}

func newTestService(t *testing.T, oracle *stubOracle, store *mockAnalysisStore) *Service {
	t.Helper()
	svc, err := NewService(oracle, store, t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestService_Process_FinanceInvoice(t *testing.T) {
	oracle := &stubOracle{response: "Invoice from Acme for server hosting."}
	store := &mockAnalysisStore{}
	svc := newTestService(t, oracle, store)

	text := "Invoice INV-2024-001 from Acme. Payment of ₹55,000 due 12/09/2025."
	result, err := svc.Process(context.Background(), "invoice.txt", strings.NewReader(text))
	require.NoError(t, err)

	assert.Equal(t, "invoice.txt", result.Filename)
	assert.Equal(t, "Finance", result.Department)
	assert.Equal(t, "Invoice from Acme for server hosting.", result.Summary)
	assert.Equal(t, "Approval Required", result.WorkflowOutcome)
	assert.Contains(t, result.Entities, "INV-2024-001")
	assert.Contains(t, result.WorkflowChecklist, "Escalate to Finance Manager")

	// Upload persisted under a unique stored name.
	require.Len(t, store.created, 1)
	assert.FileExists(t, result.StoredPath)
	assert.NotEqual(t, "invoice.txt", filepath.Base(result.StoredPath))

	// Summary prompt carries the document text.
	require.NotEmpty(t, oracle.prompts)
	assert.True(t, strings.HasPrefix(oracle.prompts[0], "Summarize this document:\n"))
}

func TestService_Process_OracleFailureDegradesToEmptySummary(t *testing.T) {
	oracle := &stubOracle{err: errors.New("model offline")}
	store := &mockAnalysisStore{}
	svc := newTestService(t, oracle, store)

	text := "Employee resignation notice effective next month."
	result, err := svc.Process(context.Background(), "notice.txt", strings.NewReader(text))
	require.NoError(t, err)

	assert.Empty(t, result.Summary)
	// Classification and workflow never depend on the oracle.
	assert.Equal(t, "HR", result.Department)
	assert.Equal(t, "Employee Exit Process", result.WorkflowOutcome)
}

func TestService_Process_UnsupportedFormat(t *testing.T) {
	svc := newTestService(t, &stubOracle{}, &mockAnalysisStore{})

	_, err := svc.Process(context.Background(), "notes.xlsx", strings.NewReader("data"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestService_Process_EmptyDocument(t *testing.T) {
	svc := newTestService(t, &stubOracle{}, &mockAnalysisStore{})

	_, err := svc.Process(context.Background(), "empty.txt", strings.NewReader("   \n"))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestService_Results_SkipsDeletedUploads(t *testing.T) {
	dir := t.TempDir()
	kept := filepath.Join(dir, "kept.txt")
	require.NoError(t, os.WriteFile(kept, []byte("still here"), 0644))

	store := &mockAnalysisStore{results: []*models.AnalysisResult{
		{ID: 1, Filename: "kept.txt", StoredPath: kept},
		{ID: 2, Filename: "gone.txt", StoredPath: filepath.Join(dir, "gone.txt")},
	}}
	svc, err := NewService(&stubOracle{}, store, dir, zap.NewNop())
	require.NoError(t, err)

	results, err := svc.Results()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(1), results[0].ID)
}

func TestService_Query(t *testing.T) {
	oracle := &stubOracle{response: "Both invoices are from Acme."}
	store := &mockAnalysisStore{summaries: []string{"First invoice summary.", "Second invoice summary."}}
	svc := newTestService(t, oracle, store)

	answer, err := svc.Query(context.Background(), "Who is the vendor?")
	require.NoError(t, err)
	assert.Equal(t, "Both invoices are from Acme.", answer)

	require.Len(t, oracle.prompts, 1)
	assert.Contains(t, oracle.prompts[0], "First invoice summary. Second invoice summary.")
	assert.Contains(t, oracle.prompts[0], "Question: Who is the vendor?")
}

func TestService_Query_OracleError(t *testing.T) {
	oracle := &stubOracle{err: errors.New("timeout")}
	svc := newTestService(t, oracle, &mockAnalysisStore{})

	_, err := svc.Query(context.Background(), "anything")
	assert.Error(t, err)
}

func TestService_ExportCSV(t *testing.T) {
	dir := t.TempDir()
	stored := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(stored, []byte("content"), 0644))

	store := &mockAnalysisStore{results: []*models.AnalysisResult{{
		ID:                1,
		Filename:          "doc.txt",
		StoredPath:        stored,
		Department:        "Legal",
		Summary:           "A contract.",
		Entities:          `{"amounts":[],"dates":[],"invoice_numbers":[]}`,
		WorkflowOutcome:   "Contract OK",
		WorkflowChecklist: `["Archive in Legal System"]`,
		CreatedAt:         time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}}}
	svc, err := NewService(&stubOracle{}, store, dir, zap.NewNop())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf))

	out := buf.String()
	assert.Contains(t, out, "filename,department,summary")
	assert.Contains(t, out, "doc.txt,Legal,A contract.")
}

func TestService_ExportCSV_NoData(t *testing.T) {
	svc := newTestService(t, &stubOracle{}, &mockAnalysisStore{})

	var buf bytes.Buffer
	assert.Error(t, svc.ExportCSV(&buf))
}

func TestExtractText_Txt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	text, err := ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtractText_UnsupportedExtension(t *testing.T) {
	_, err := ExtractText("whatever.png")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
