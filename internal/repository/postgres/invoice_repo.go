package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"finsight/internal/domain"
	"finsight/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	inv.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invoices (
			id, company_id, document_id, invoice_code, invoice_number,
			total_amount_tax_included, verification_status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		inv.ID, inv.CompanyID, inv.DocumentID, inv.InvoiceCode, inv.InvoiceNumber,
		inv.TotalAmountTaxIncluded, inv.VerificationStatus, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices WHERE company_id = $1 ORDER BY created_at DESC", companyID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByCompany: %w", err)
	}
	return invoices, nil
}
