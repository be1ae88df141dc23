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

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (
			id, company_id, name, storage_path, file_type,
			status, error_message, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		doc.ID, doc.CompanyID, doc.Name, doc.StoragePath, doc.FileType,
		doc.Status, doc.ErrorMessage, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE company_id = $1", companyID)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByCompany count: %w", err)
	}

	var docs []domain.Document
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents WHERE company_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByCompany: %w", err)
	}
	return docs, total, nil
}

// MarkProcessing claims the document for extraction. The status guard makes
// the claim atomic: a document already in processing matches zero rows and
// the caller gets ErrDocumentBusy.
func (r *documentRepo) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = $1, error_message = '', updated_at = $2
		 WHERE id = $3 AND status <> $1`,
		domain.DocumentStatusProcessing, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("documentRepo.MarkProcessing: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Distinguish a missing document from a concurrent claim.
		var exists bool
		if err := r.db.GetContext(ctx, &exists,
			"SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)", id); err != nil {
			return fmt.Errorf("documentRepo.MarkProcessing exists: %w", err)
		}
		if !exists {
			return domain.ErrDocumentNotFound
		}
		return domain.ErrDocumentBusy
	}
	return nil
}

func (r *documentRepo) MarkExtracted(ctx context.Context, id uuid.UUID, docType domain.DocType) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = $1, file_type = $2, error_message = '', updated_at = $3
		 WHERE id = $4`,
		domain.DocumentStatusExtracted, string(docType), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("documentRepo.MarkExtracted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = $1, error_message = $2, updated_at = $3
		 WHERE id = $4`,
		domain.DocumentStatusError, message, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("documentRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) MarkParsed(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET status = $1, updated_at = $2 WHERE id = $3`,
		domain.DocumentStatusParsed, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("documentRepo.MarkParsed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
