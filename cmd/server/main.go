package main

import (
	"context"
	"fmt"
	"log"

	"finsight/internal/config"
	"finsight/internal/export"
	"finsight/internal/handler"
	"finsight/internal/llm/openrouter"
	"finsight/internal/port"
	"finsight/internal/repository/postgres"
	"finsight/internal/router"
	"finsight/internal/service"
	s3storage "finsight/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	companyRepo := postgres.NewCompanyRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)
	extractionRepo := postgres.NewExtractionRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	contractRepo := postgres.NewContractRepo(db)
	bankStatementRepo := postgres.NewBankStatementRepo(db)
	payrollRepo := postgres.NewPayrollRepo(db)
	providerRepo := postgres.NewProviderRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Chat model resolution: the active provider row wins, environment
	// config is the fallback.
	resolveModel := func(ctx context.Context) (port.ChatModel, error) {
		if p, err := providerRepo.GetActive(ctx); err == nil {
			model := cfg.LLM.DefaultModel
			if p.SelectedModel != nil && *p.SelectedModel != "" {
				model = *p.SelectedModel
			}
			return openrouter.NewClient(openrouter.Options{
				BaseURL:     p.BaseURL,
				APIKey:      p.APIKey,
				Model:       model,
				TimeoutSecs: cfg.LLM.TimeoutSecs,
			}), nil
		}
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("no active llm provider configured and FINSIGHT_LLM_API_KEY is empty")
		}
		return openrouter.NewClient(openrouter.Options{
			BaseURL:     cfg.LLM.BaseURL,
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.DefaultModel,
			TimeoutSecs: cfg.LLM.TimeoutSecs,
		}), nil
	}

	probe := func(ctx context.Context, baseURL, apiKey string) ([]string, error) {
		client := openrouter.NewClient(openrouter.Options{
			BaseURL:     baseURL,
			APIKey:      apiKey,
			TimeoutSecs: cfg.LLM.TimeoutSecs,
		})
		return client.ListModels(ctx)
	}

	// Initialize services
	companySvc := service.NewCompanyService(companyRepo)
	documentSvc := service.NewDocumentService(
		documentRepo, extractionRepo, s3Client, resolveModel,
		cfg.S3.Bucket, cfg.S3.PresignExpiry, cfg.S3.MaxFileSizeMB,
	)
	extractionSvc := service.NewExtractionService(
		extractionRepo, documentRepo,
		invoiceRepo, contractRepo, bankStatementRepo, payrollRepo,
	)
	providerSvc := service.NewProviderService(providerRepo, probe)
	exportSvc := export.NewService(companyRepo, invoiceRepo, bankStatementRepo)

	// Initialize handlers
	healthH := handler.NewHealthHandler(db)
	companyH := handler.NewCompanyHandler(companySvc, exportSvc)
	documentH := handler.NewDocumentHandler(documentSvc)
	extractionH := handler.NewExtractionHandler(extractionSvc)
	providerH := handler.NewProviderHandler(providerSvc)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, healthH, companyH, documentH, extractionH, providerH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
