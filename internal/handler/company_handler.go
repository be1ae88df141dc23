package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finsight/internal/export"
	"finsight/internal/service"
)

// CompanyHandler handles company endpoints including table exports.
type CompanyHandler struct {
	companyService *service.CompanyService
	exportService  *export.Service
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService *service.CompanyService, exportService *export.Service) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, exportService: exportService}
}

// Create handles POST /api/v1/companies
// @Summary Create a company
// @Tags companies
// @Accept json
// @Produce json
// @Success 201 {object} APIResponse "Company created"
// @Failure 400 {object} APIResponse "Invalid request"
// @Router /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, company)
}

// List handles GET /api/v1/companies
// @Summary List companies
// @Tags companies
// @Produce json
// @Success 200 {object} APIResponse "List of companies"
// @Router /companies [get]
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, companies)
}

// GetByID handles GET /api/v1/companies/:id
// @Summary Get company by ID
// @Tags companies
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Success 200 {object} APIResponse "Company details"
// @Failure 404 {object} APIResponse "Company not found"
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, company)
}

// ExportInvoices handles GET /api/v1/companies/:id/export/invoices
// @Summary Export a company's invoices as XLSX
// @Tags companies
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Company ID (UUID)"
// @Success 200 {file} binary "XLSX workbook"
// @Failure 404 {object} APIResponse "Company not found"
// @Router /companies/{id}/export/invoices [get]
func (h *CompanyHandler) ExportInvoices(c *gin.Context) {
	h.export(c, h.exportService.InvoicesXLSX)
}

// ExportBankStatements handles GET /api/v1/companies/:id/export/bank-statements
// @Summary Export a company's bank statement rows as XLSX
// @Tags companies
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Company ID (UUID)"
// @Success 200 {file} binary "XLSX workbook"
// @Failure 404 {object} APIResponse "Company not found"
// @Router /companies/{id}/export/bank-statements [get]
func (h *CompanyHandler) ExportBankStatements(c *gin.Context) {
	h.export(c, h.exportService.BankStatementsXLSX)
}

func (h *CompanyHandler) export(c *gin.Context, build func(ctx context.Context, companyID uuid.UUID) ([]byte, string, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}

	data, filename, err := build(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
