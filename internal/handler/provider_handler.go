package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finsight/internal/service"
)

// ProviderHandler handles LLM provider configuration endpoints.
type ProviderHandler struct {
	providerService *service.ProviderService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(providerService *service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

// List handles GET /api/v1/llm/providers
// @Summary List configured LLM providers
// @Tags llm
// @Produce json
// @Success 200 {object} APIResponse "Providers with masked keys"
// @Router /llm/providers [get]
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.providerService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, providers)
}

// Create handles POST /api/v1/llm/providers
// @Summary Register an LLM provider
// @Tags llm
// @Accept json
// @Produce json
// @Success 201 {object} APIResponse "Provider registered"
// @Failure 400 {object} APIResponse "Invalid request"
// @Router /llm/providers [post]
func (h *ProviderHandler) Create(c *gin.Context) {
	var req struct {
		Name          string  `json:"name" binding:"required"`
		BaseURL       string  `json:"base_url" binding:"required"`
		APIKey        string  `json:"api_key" binding:"required"`
		SelectedModel *string `json:"selected_model"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name, base_url, and api_key are required")
		return
	}

	view, err := h.providerService.Create(c.Request.Context(), service.CreateProviderInput{
		Name:          req.Name,
		BaseURL:       req.BaseURL,
		APIKey:        req.APIKey,
		SelectedModel: req.SelectedModel,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, view)
}

// Update handles PUT /api/v1/llm/providers/:id
// @Summary Update an LLM provider
// @Tags llm
// @Accept json
// @Produce json
// @Param id path string true "Provider ID (UUID)"
// @Success 200 {object} APIResponse "Provider updated"
// @Failure 404 {object} APIResponse "Provider not found"
// @Router /llm/providers/{id} [put]
func (h *ProviderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid provider ID")
		return
	}

	var req struct {
		Name          string  `json:"name"`
		BaseURL       string  `json:"base_url"`
		APIKey        string  `json:"api_key"`
		SelectedModel *string `json:"selected_model"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	view, err := h.providerService.Update(c.Request.Context(), id, service.UpdateProviderInput{
		Name:          req.Name,
		BaseURL:       req.BaseURL,
		APIKey:        req.APIKey,
		SelectedModel: req.SelectedModel,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Delete handles DELETE /api/v1/llm/providers/:id
// @Summary Delete an LLM provider
// @Tags llm
// @Produce json
// @Param id path string true "Provider ID (UUID)"
// @Success 200 {object} APIResponse "Provider deleted"
// @Failure 400 {object} APIResponse "Provider is active"
// @Failure 404 {object} APIResponse "Provider not found"
// @Router /llm/providers/{id} [delete]
func (h *ProviderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid provider ID")
		return
	}

	if err := h.providerService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// Activate handles POST /api/v1/llm/providers/:id/activate
// @Summary Make a provider the active one
// @Tags llm
// @Produce json
// @Param id path string true "Provider ID (UUID)"
// @Success 200 {object} APIResponse "Provider activated"
// @Failure 404 {object} APIResponse "Provider not found"
// @Router /llm/providers/{id}/activate [post]
func (h *ProviderHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid provider ID")
		return
	}

	if err := h.providerService.Activate(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"activated": id})
}

// Test handles POST /api/v1/llm/test
// @Summary Test provider credentials
// @Description Lists the models the endpoint offers using the given credentials
// @Tags llm
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse "Available models"
// @Failure 502 {object} APIResponse "Provider unreachable"
// @Router /llm/test [post]
func (h *ProviderHandler) Test(c *gin.Context) {
	var req struct {
		BaseURL string `json:"base_url" binding:"required"`
		APIKey  string `json:"api_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "base_url and api_key are required")
		return
	}

	models, err := h.providerService.TestConnection(c.Request.Context(), req.BaseURL, req.APIKey)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"models": models})
}
