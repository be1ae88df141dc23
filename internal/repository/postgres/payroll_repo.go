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

type payrollRepo struct {
	db *sqlx.DB
}

// NewPayrollRepo creates a new PostgreSQL-backed PayrollRepository.
func NewPayrollRepo(db *sqlx.DB) port.PayrollRepository {
	return &payrollRepo{db: db}
}

func (r *payrollRepo) Create(ctx context.Context, rec *domain.PayrollRecord) error {
	rec.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO payroll_records (
			id, company_id, document_id, employee_id, pay_period,
			base_salary, position_subsidy, total_deductions, net_pay, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.CompanyID, rec.DocumentID, rec.EmployeeID, rec.PayPeriod,
		rec.BaseSalary, rec.PositionSubsidy, rec.TotalDeductions, rec.NetPay, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("payrollRepo.Create: %w", err)
	}
	return nil
}

func (r *payrollRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.PayrollRecord, error) {
	var records []domain.PayrollRecord
	err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM payroll_records WHERE company_id = $1 ORDER BY created_at DESC", companyID)
	if err != nil {
		return nil, fmt.Errorf("payrollRepo.ListByCompany: %w", err)
	}
	return records, nil
}
