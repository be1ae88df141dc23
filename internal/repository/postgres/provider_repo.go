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

type providerRepo struct {
	db *sqlx.DB
}

// NewProviderRepo creates a new PostgreSQL-backed ProviderRepository.
func NewProviderRepo(db *sqlx.DB) port.ProviderRepository {
	return &providerRepo{db: db}
}

func (r *providerRepo) Create(ctx context.Context, p *domain.LLMProvider) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_providers (
			id, name, base_url, api_key, selected_model, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.BaseURL, p.APIKey, p.SelectedModel, p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("providerRepo.Create: %w", err)
	}
	return nil
}

func (r *providerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LLMProvider, error) {
	var p domain.LLMProvider
	err := r.db.GetContext(ctx, &p,
		"SELECT * FROM llm_providers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("providerRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *providerRepo) GetActive(ctx context.Context) (*domain.LLMProvider, error) {
	var p domain.LLMProvider
	err := r.db.GetContext(ctx, &p,
		"SELECT * FROM llm_providers WHERE is_active = TRUE LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("providerRepo.GetActive: %w", err)
	}
	return &p, nil
}

func (r *providerRepo) List(ctx context.Context) ([]domain.LLMProvider, error) {
	var providers []domain.LLMProvider
	err := r.db.SelectContext(ctx, &providers,
		"SELECT * FROM llm_providers ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("providerRepo.List: %w", err)
	}
	return providers, nil
}

func (r *providerRepo) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM llm_providers")
	if err != nil {
		return 0, fmt.Errorf("providerRepo.Count: %w", err)
	}
	return total, nil
}

func (r *providerRepo) Update(ctx context.Context, p *domain.LLMProvider) error {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE llm_providers SET
			name = $1, base_url = $2, api_key = $3, selected_model = $4, updated_at = $5
		 WHERE id = $6`,
		p.Name, p.BaseURL, p.APIKey, p.SelectedModel, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("providerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func (r *providerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM llm_providers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("providerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

// Activate flips the single-active flag inside one transaction: everything
// off, then the chosen provider on.
func (r *providerRepo) Activate(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("providerRepo.Activate begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		"UPDATE llm_providers SET is_active = FALSE, updated_at = $1 WHERE is_active = TRUE", now); err != nil {
		return fmt.Errorf("providerRepo.Activate deactivate: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE llm_providers SET is_active = TRUE, updated_at = $1 WHERE id = $2", now, id)
	if err != nil {
		return fmt.Errorf("providerRepo.Activate activate: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProviderNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("providerRepo.Activate commit: %w", err)
	}
	return nil
}
