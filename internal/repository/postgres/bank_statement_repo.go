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

type bankStatementRepo struct {
	db *sqlx.DB
}

// NewBankStatementRepo creates a new PostgreSQL-backed BankStatementRepository.
func NewBankStatementRepo(db *sqlx.DB) port.BankStatementRepository {
	return &bankStatementRepo{db: db}
}

// CreateBatch inserts all statement rows inside one transaction so a partial
// statement never lands.
func (r *bankStatementRepo) CreateBatch(ctx context.Context, entries []domain.BankStatementEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("bankStatementRepo.CreateBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for i := range entries {
		entries[i].CreatedAt = now
		e := &entries[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bank_statements (
				id, company_id, document_id, transaction_date, counterparty_name,
				debit_amount, credit_amount, summary, account_number, account_name,
				bank_name, currency, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			e.ID, e.CompanyID, e.DocumentID, e.TransactionDate, e.CounterpartyName,
			e.DebitAmount, e.CreditAmount, e.Summary, e.AccountNumber, e.AccountName,
			e.BankName, e.Currency, e.CreatedAt)
		if err != nil {
			return fmt.Errorf("bankStatementRepo.CreateBatch insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("bankStatementRepo.CreateBatch commit: %w", err)
	}
	return nil
}

func (r *bankStatementRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.BankStatementEntry, error) {
	var entries []domain.BankStatementEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM bank_statements WHERE company_id = $1
		 ORDER BY transaction_date ASC, created_at ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("bankStatementRepo.ListByCompany: %w", err)
	}
	return entries, nil
}
