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

type extractionRepo struct {
	db *sqlx.DB
}

// NewExtractionRepo creates a new PostgreSQL-backed ExtractionRepository.
func NewExtractionRepo(db *sqlx.DB) port.ExtractionRepository {
	return &extractionRepo{db: db}
}

func (r *extractionRepo) Create(ctx context.Context, res *domain.ExtractionResult) error {
	res.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extraction_results (
			id, document_id, doc_type, extracted_data,
			status, user_corrections, reviewed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		res.ID, res.DocumentID, res.DocType, res.ExtractedData,
		res.Status, res.UserCorrections, res.ReviewedAt, res.CreatedAt)
	if err != nil {
		return fmt.Errorf("extractionRepo.Create: %w", err)
	}
	return nil
}

func (r *extractionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionResult, error) {
	var res domain.ExtractionResult
	err := r.db.GetContext(ctx, &res,
		"SELECT * FROM extraction_results WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExtractionNotFound
		}
		return nil, fmt.Errorf("extractionRepo.GetByID: %w", err)
	}
	return &res, nil
}

func (r *extractionRepo) GetPendingByDocument(ctx context.Context, documentID uuid.UUID) (*domain.ExtractionResult, error) {
	var res domain.ExtractionResult
	err := r.db.GetContext(ctx, &res,
		`SELECT * FROM extraction_results
		 WHERE document_id = $1 AND status = $2
		 ORDER BY created_at DESC LIMIT 1`,
		documentID, domain.ExtractionStatusPendingReview)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExtractionNotFound
		}
		return nil, fmt.Errorf("extractionRepo.GetPendingByDocument: %w", err)
	}
	return &res, nil
}

func (r *extractionRepo) MarkApproved(ctx context.Context, res *domain.ExtractionResult) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE extraction_results SET status = $1, user_corrections = $2, reviewed_at = $3
		 WHERE id = $4`,
		res.Status, res.UserCorrections, res.ReviewedAt, res.ID)
	if err != nil {
		return fmt.Errorf("extractionRepo.MarkApproved: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExtractionNotFound
	}
	return nil
}
