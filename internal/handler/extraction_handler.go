package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finsight/internal/service"
)

// ExtractionHandler handles review and approval endpoints.
type ExtractionHandler struct {
	extractionService *service.ExtractionService
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractionService *service.ExtractionService) *ExtractionHandler {
	return &ExtractionHandler{extractionService: extractionService}
}

// Approve handles POST /api/v1/extractions/approve
// @Summary Approve an extraction result
// @Description Commits the extraction (or the reviewer's corrections) into the typed tables
// @Tags extractions
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Extraction approved"
// @Failure 400 {object} APIResponse "Invalid request or payload"
// @Failure 404 {object} APIResponse "Extraction not found"
// @Failure 409 {object} APIResponse "Already approved"
// @Router /extractions/approve [post]
func (h *ExtractionHandler) Approve(c *gin.Context) {
	var req struct {
		ExtractionID    uuid.UUID       `json:"extraction_id" binding:"required"`
		UserCorrections json.RawMessage `json:"user_corrections"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "extraction_id is required")
		return
	}

	res, err := h.extractionService.Approve(c.Request.Context(), req.ExtractionID, req.UserCorrections)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}
