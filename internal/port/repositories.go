package port

import (
	"context"

	"github.com/google/uuid"

	"finsight/internal/domain"
)

// CompanyRepository persists companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
}

// DocumentRepository persists documents and their lifecycle status.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.Document, int, error)
	// MarkProcessing transitions the document to processing. It must fail with
	// domain.ErrDocumentBusy when the document is already processing, so that
	// concurrent parse requests are rejected at the database.
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	// MarkExtracted records extraction success and the detected document type.
	MarkExtracted(ctx context.Context, id uuid.UUID, docType domain.DocType) error
	// MarkFailed records extraction failure with a short error message.
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	// MarkParsed transitions the document to its terminal approved state.
	MarkParsed(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExtractionRepository persists extraction results.
type ExtractionRepository interface {
	Create(ctx context.Context, res *domain.ExtractionResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionResult, error)
	// GetPendingByDocument returns the latest pending_review result for the document.
	GetPendingByDocument(ctx context.Context, documentID uuid.UUID) (*domain.ExtractionResult, error)
	// MarkApproved stores the reviewer's corrections and the review timestamp.
	MarkApproved(ctx context.Context, res *domain.ExtractionResult) error
}

// InvoiceRepository persists approved invoice records.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Invoice, error)
}

// ContractRepository persists approved contract records.
type ContractRepository interface {
	Create(ctx context.Context, con *domain.Contract) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Contract, error)
}

// BankStatementRepository persists approved bank statement rows.
type BankStatementRepository interface {
	// CreateBatch inserts all entries in a single transaction. Either every
	// row lands or none do.
	CreateBatch(ctx context.Context, entries []domain.BankStatementEntry) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.BankStatementEntry, error)
}

// PayrollRepository persists approved payroll records.
type PayrollRepository interface {
	Create(ctx context.Context, rec *domain.PayrollRecord) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.PayrollRecord, error)
}

// ProviderRepository persists LLM provider configurations.
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.LLMProvider) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LLMProvider, error)
	GetActive(ctx context.Context) (*domain.LLMProvider, error)
	List(ctx context.Context) ([]domain.LLMProvider, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, p *domain.LLMProvider) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Activate marks the given provider active and deactivates all others,
	// atomically.
	Activate(ctx context.Context, id uuid.UUID) error
}
