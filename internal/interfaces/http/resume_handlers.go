package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roylobo/genai-portal/internal/document"
)

// UploadResume handles POST /upload_resume.
func (h *Handlers) UploadResume(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file is required")
		return
	}

	var req struct {
		UserID int64 `form:"user_id" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read upload")
		return
	}
	defer src.Close()

	r, err := h.resumeService.Upload(c.Request.Context(), req.UserID, file.Filename, src)
	switch {
	case errors.Is(err, document.ErrUnsupportedFormat):
		respondError(c, http.StatusBadRequest, "unsupported file format")
		return
	case errors.Is(err, document.ErrNoText):
		respondError(c, http.StatusBadRequest, "No readable text found")
		return
	case err != nil:
		h.logger.Error("Resume processing failed", zap.String("filename", file.Filename), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "resume processing failed")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: r})
}

// ListResumes handles GET /resumes.
func (h *Handlers) ListResumes(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	resumes, err := h.resumeService.List(userID)
	if err != nil {
		h.logger.Error("Failed to list resumes", zap.Int64("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list resumes")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: resumes})
}

// SearchCandidatesRequest is the candidate search form.
type SearchCandidatesRequest struct {
	UserID        int64  `form:"user_id" binding:"required"`
	JobRole       string `form:"job_role" binding:"required"`
	MinExperience int    `form:"min_experience"`
}

// SearchCandidates handles POST /search_candidates.
func (h *Handlers) SearchCandidates(c *gin.Context) {
	var req SearchCandidatesRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "user_id and job_role are required")
		return
	}

	resumes, err := h.resumeService.Search(req.UserID, req.JobRole, req.MinExperience)
	if err != nil {
		h.logger.Error("Candidate search failed", zap.Int64("user_id", req.UserID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "search failed")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: resumes})
}
