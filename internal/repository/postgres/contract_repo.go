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

type contractRepo struct {
	db *sqlx.DB
}

// NewContractRepo creates a new PostgreSQL-backed ContractRepository.
func NewContractRepo(db *sqlx.DB) port.ContractRepository {
	return &contractRepo{db: db}
}

func (r *contractRepo) Create(ctx context.Context, con *domain.Contract) error {
	con.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contracts (
			id, company_id, document_id, contract_no, title,
			party_a, party_b, total_amount, start_date, end_date,
			contract_type, verification_status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		con.ID, con.CompanyID, con.DocumentID, con.ContractNo, con.Title,
		con.PartyA, con.PartyB, con.TotalAmount, con.StartDate, con.EndDate,
		con.ContractType, con.VerificationStatus, con.CreatedAt)
	if err != nil {
		return fmt.Errorf("contractRepo.Create: %w", err)
	}
	return nil
}

func (r *contractRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Contract, error) {
	var contracts []domain.Contract
	err := r.db.SelectContext(ctx, &contracts,
		"SELECT * FROM contracts WHERE company_id = $1 ORDER BY created_at DESC", companyID)
	if err != nil {
		return nil, fmt.Errorf("contractRepo.ListByCompany: %w", err)
	}
	return contracts, nil
}
