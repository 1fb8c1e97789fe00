package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roylobo/genai-portal/internal/classifier"
	"github.com/roylobo/genai-portal/internal/extractor"
)

// ExtractFieldsRequest is the field-extraction form.
type ExtractFieldsRequest struct {
	Text string `form:"text" binding:"required"`
}

// ExtractFieldsResponse carries the department assignment and its
// department-shaped field mapping.
type ExtractFieldsResponse struct {
	Department string      `json:"department"`
	Fields     interface{} `json:"fields"`
}

// ExtractFields handles POST /extract_fields: classify the text and run the
// matching department extractor. General texts have no extractor; they get
// the generic entity scan instead.
func (h *Handlers) ExtractFields(c *gin.Context) {
	var req ExtractFieldsRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "text is required")
		return
	}

	ctx := c.Request.Context()
	department := classifier.Department(req.Text)

	var fields interface{}
	switch department {
	case classifier.DeptFinance:
		fields = h.extractor.Finance(ctx, req.Text)
	case classifier.DeptLegal:
		fields = h.extractor.Legal(ctx, req.Text)
	case classifier.DeptCustomerSupport:
		fields = gin.H{"raw": h.extractor.Support(ctx, req.Text)}
	case classifier.DeptHR:
		fields = gin.H{"raw": h.extractor.HR(ctx, req.Text)}
	default:
		fields = extractor.ScanEntities(req.Text)
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: ExtractFieldsResponse{
			Department: department,
			Fields:     fields,
		},
	})
}
