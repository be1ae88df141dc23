package router

import (
	"github.com/gin-gonic/gin"

	"finsight/internal/handler"
	"finsight/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	healthH *handler.HealthHandler,
	companyH *handler.CompanyHandler,
	documentH *handler.DocumentHandler,
	extractionH *handler.ExtractionHandler,
	providerH *handler.ProviderHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Company routes
	companies := v1.Group("/companies")
	companies.POST("", companyH.Create)
	companies.GET("", companyH.List)
	companies.GET("/:id", companyH.GetByID)
	companies.GET("/:id/export/invoices", companyH.ExportInvoices)
	companies.GET("/:id/export/bank-statements", companyH.ExportBankStatements)

	// Document routes
	documents := v1.Group("/documents")
	documents.POST("/upload", documentH.Upload)
	documents.GET("", documentH.List)
	documents.GET("/:id", documentH.GetByID)
	documents.DELETE("/:id", documentH.Delete)
	documents.POST("/:id/parse", documentH.Parse)
	documents.GET("/:id/extraction", documentH.GetExtraction)

	// Extraction review routes
	extractions := v1.Group("/extractions")
	extractions.POST("/approve", extractionH.Approve)

	// LLM provider routes
	llm := v1.Group("/llm")
	llm.GET("/providers", providerH.List)
	llm.POST("/providers", providerH.Create)
	llm.PUT("/providers/:id", providerH.Update)
	llm.DELETE("/providers/:id", providerH.Delete)
	llm.POST("/providers/:id/activate", providerH.Activate)
	llm.POST("/test", providerH.Test)

	return r
}
