package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"finsight/internal/domain"
	"finsight/internal/port"
)

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		company.ID, company.Name, company.CreatedAt, company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("companyRepo.Create: %w", err)
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.GetContext(ctx, &company,
		"SELECT * FROM companies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByID: %w", err)
	}
	return &company, nil
}

func (r *companyRepo) List(ctx context.Context) ([]domain.Company, error) {
	var companies []domain.Company
	err := r.db.SelectContext(ctx, &companies,
		"SELECT * FROM companies ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("companyRepo.List: %w", err)
	}
	return companies, nil
}
