package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finsight/internal/service"
)

// DocumentHandler handles document lifecycle endpoints.
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles POST /api/v1/documents/upload
// @Summary Upload a document
// @Description Upload a scanned document (pdf, jpg, png) for a company
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param company_id formData string true "Company ID (UUID)"
// @Success 201 {object} APIResponse "Document stored"
// @Failure 400 {object} APIResponse "Invalid request or unsupported file type"
// @Failure 413 {object} APIResponse "File too large"
// @Router /documents/upload [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	companyID, err := uuid.Parse(c.PostForm("company_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "company_id is required and must be a UUID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}
	defer func() { _ = f.Close() }()

	doc, err := h.documentService.Upload(c.Request.Context(), service.UploadInput{
		CompanyID:   companyID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        f,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, doc)
}

// List handles GET /api/v1/documents
// @Summary List documents for a company
// @Tags documents
// @Produce json
// @Param company_id query string true "Company ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse "List of documents"
// @Failure 400 {object} APIResponse "Invalid company_id"
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "company_id is required and must be a UUID")
		return
	}
	offset, limit := parsePagination(c)

	docs, total, err := h.documentService.ListByCompany(c.Request.Context(), companyID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} APIResponse "Document details"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} APIResponse "Document deleted"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), docID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": docID})
}

// Parse handles POST /api/v1/documents/:id/parse
// @Summary Start document extraction
// @Description Claims the document and runs model extraction in the background
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 202 {object} APIResponse "Extraction started"
// @Failure 404 {object} APIResponse "Document not found"
// @Failure 409 {object} APIResponse "Document is already being processed"
// @Router /documents/{id}/parse [post]
func (h *DocumentHandler) Parse(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	if err := h.documentService.ParseAsync(c.Request.Context(), docID); err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, gin.H{"document_id": docID, "status": "processing"})
}

// GetExtraction handles GET /api/v1/documents/:id/extraction
// @Summary Get the pending extraction for a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} APIResponse "Pending extraction result"
// @Failure 404 {object} APIResponse "Document or extraction not found"
// @Router /documents/{id}/extraction [get]
func (h *DocumentHandler) GetExtraction(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	res, err := h.documentService.GetPendingExtraction(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}
