package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/document"
	"github.com/roylobo/genai-portal/internal/models"
)

// AnalysisResponse is the API view of a stored analysis result. Entities and
// the checklist are persisted as JSON text; they are re-emitted as structured
// JSON here.
type AnalysisResponse struct {
	ID                int64           `json:"id"`
	Filename          string          `json:"filename"`
	Department        string          `json:"department"`
	Summary           string          `json:"summary"`
	Entities          json.RawMessage `json:"entities"`
	WorkflowOutcome   string          `json:"workflow_outcome"`
	WorkflowChecklist json.RawMessage `json:"workflow_checklist"`
	CreatedAt         string          `json:"created_at"`
}

func newAnalysisResponse(r *models.AnalysisResult) AnalysisResponse {
	return AnalysisResponse{
		ID:                r.ID,
		Filename:          r.Filename,
		Department:        r.Department,
		Summary:           r.Summary,
		Entities:          json.RawMessage(r.Entities),
		WorkflowOutcome:   r.WorkflowOutcome,
		WorkflowChecklist: json.RawMessage(r.WorkflowChecklist),
		CreatedAt:         r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// UploadDocument handles POST /upload.
func (h *Handlers) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read upload")
		return
	}
	defer src.Close()

	result, err := h.documentService.Process(c.Request.Context(), file.Filename, src)
	switch {
	case errors.Is(err, document.ErrUnsupportedFormat):
		respondError(c, http.StatusBadRequest, "unsupported file format")
		return
	case errors.Is(err, document.ErrNoText):
		respondError(c, http.StatusBadRequest, "No readable text found")
		return
	case err != nil:
		h.logger.Error("Document processing failed", zap.String("filename", file.Filename), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "document processing failed")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: newAnalysisResponse(result)})
}

// ListResults handles GET /results.
func (h *Handlers) ListResults(c *gin.Context) {
	results, err := h.documentService.Results()
	if err != nil {
		h.logger.Error("Failed to list results", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list results")
		return
	}

	responses := make([]AnalysisResponse, 0, len(results))
	for _, r := range results {
		responses = append(responses, newAnalysisResponse(r))
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: responses})
}

// QueryRequest is the document/ticket query form.
type QueryRequest struct {
	Question string `form:"question" binding:"required"`
}

// QueryDocuments handles POST /query.
func (h *Handlers) QueryDocuments(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.documentService.Query(c.Request.Context(), req.Question)
	if err != nil {
		h.logger.Error("Document query failed", zap.Error(err))
		respondError(c, http.StatusServiceUnavailable, "query failed")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"answer": answer}})
}

// DownloadDocuments handles GET /download_docs.
func (h *Handlers) DownloadDocuments(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.documentService.ExportCSV(&buf); err != nil {
		h.logger.Error("Document export failed", zap.Error(err))
		respondError(c, http.StatusNotFound, "No data available")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="results_docs.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
