package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"finsight/internal/domain"
	"finsight/internal/parser"
	"finsight/internal/port"
)

// errorMessageLimit bounds the error text stored on a document; full detail
// goes to the server log only.
const errorMessageLimit = 500

// parseTimeout bounds a background extraction run.
const parseTimeout = 5 * time.Minute

// failureRecordTimeout bounds the status write that records a failed parse.
const failureRecordTimeout = 10 * time.Second

// ChatModelResolver returns the chat model to use for the next extraction.
// Resolution happens per call so provider changes take effect without a
// restart.
type ChatModelResolver func(ctx context.Context) (port.ChatModel, error)

// DocumentService manages the document lifecycle from upload through
// extraction.
type DocumentService struct {
	docs        port.DocumentRepository
	extractions port.ExtractionRepository
	storage     port.ObjectStorage
	model       ChatModelResolver

	bucket        string
	presignExpiry int64
	maxFileSize   int64
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(
	docs port.DocumentRepository,
	extractions port.ExtractionRepository,
	storage port.ObjectStorage,
	model ChatModelResolver,
	bucket string,
	presignExpiry int64,
	maxFileSizeMB int64,
) *DocumentService {
	return &DocumentService{
		docs:          docs,
		extractions:   extractions,
		storage:       storage,
		model:         model,
		bucket:        bucket,
		presignExpiry: presignExpiry,
		maxFileSize:   maxFileSizeMB * 1024 * 1024,
	}
}

// UploadInput carries an incoming file upload.
type UploadInput struct {
	CompanyID   uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload validates and stores the file, then records the document in its
// initial uploaded state.
func (s *DocumentService) Upload(ctx context.Context, input UploadInput) (*domain.Document, error) {
	ext, err := validateFile(input.FileName, input.ContentType, input.Size, s.maxFileSize)
	if err != nil {
		return nil, err
	}

	// Buffer the body so a collision retry can replay it.
	data, err := io.ReadAll(io.LimitReader(input.Body, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("documentService.Upload read: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, domain.ErrFileTooLarge
	}
	if !magicBytesMatch(ext, data) {
		return nil, domain.ErrUnsupportedFileType
	}

	key := storageKey(input.CompanyID, ext)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: input.ContentType,
		Size:        int64(len(data)),
	})
	if errors.Is(err, domain.ErrObjectExists) {
		// Key collision is a generated-name clash; retry once under a fresh one.
		key = storageKey(input.CompanyID, ext)
		_, err = s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.bucket,
			Key:         key,
			Body:        bytes.NewReader(data),
			ContentType: input.ContentType,
			Size:        int64(len(data)),
		})
	}
	if err != nil {
		log.Printf("documentService.Upload: storage upload failed: %v", err)
		return nil, domain.ErrUploadFailed
	}

	doc := &domain.Document{
		ID:          uuid.New(),
		CompanyID:   input.CompanyID,
		Name:        input.FileName,
		StoragePath: key,
		FileType:    input.ContentType,
		Status:      domain.DocumentStatusUploaded,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}

	log.Printf("documentService.Upload: stored document %s at %s", doc.ID, key)
	return doc, nil
}

// GetByID returns a document.
func (s *DocumentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return s.docs.GetByID(ctx, id)
}

// ListByCompany returns a page of a company's documents plus the total count.
func (s *DocumentService) ListByCompany(ctx context.Context, companyID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	return s.docs.ListByCompany(ctx, companyID, offset, limit)
}

// Delete removes the document record and its stored object.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, s.bucket, doc.StoragePath); err != nil {
		// The row is the source of truth; an orphaned object is only noise.
		log.Printf("documentService.Delete: deleting object %s: %v", doc.StoragePath, err)
	}
	return s.docs.Delete(ctx, id)
}

// Parse runs extraction synchronously: claim the document, send it to the
// model, store the pending extraction result.
func (s *DocumentService) Parse(ctx context.Context, docID uuid.UUID) (*domain.ExtractionResult, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	// Claiming the processing state is the durability checkpoint; a
	// concurrent caller loses the conditional update and gets ErrDocumentBusy.
	if err := s.docs.MarkProcessing(ctx, doc.ID); err != nil {
		return nil, err
	}

	res, err := s.extract(ctx, doc)
	if err != nil {
		s.failParsing(ctx, doc.ID, err)
		return nil, err
	}
	return res, nil
}

// ParseAsync starts extraction in the background and returns immediately.
// The claim still happens on the caller's context so busy and not-found
// errors surface synchronously.
func (s *DocumentService) ParseAsync(ctx context.Context, docID uuid.UUID) error {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if err := s.docs.MarkProcessing(ctx, doc.ID); err != nil {
		return err
	}

	go s.parseInBackground(doc)
	return nil
}

// GetPendingExtraction returns the latest pending extraction for a document.
func (s *DocumentService) GetPendingExtraction(ctx context.Context, docID uuid.UUID) (*domain.ExtractionResult, error) {
	if _, err := s.docs.GetByID(ctx, docID); err != nil {
		return nil, err
	}
	return s.extractions.GetPendingByDocument(ctx, docID)
}

func (s *DocumentService) parseInBackground(doc *domain.Document) {
	ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
	defer cancel()

	log.Printf("documentService.parseInBackground: starting extraction for document %s", doc.ID)
	if _, err := s.extract(ctx, doc); err != nil {
		s.failParsing(ctx, doc.ID, err)
		return
	}
	log.Printf("documentService.parseInBackground: extraction complete for document %s", doc.ID)
}

// extract runs the model call and records the result. The caller has already
// moved the document into processing.
func (s *DocumentService) extract(ctx context.Context, doc *domain.Document) (*domain.ExtractionResult, error) {
	url, err := s.storage.GetPresignedURL(ctx, s.bucket, doc.StoragePath, s.presignExpiry)
	if err != nil {
		return nil, domain.NewUpstreamError("presigning document", err)
	}

	model, err := s.model(ctx)
	if err != nil {
		return nil, domain.NewUpstreamError("resolving chat model", err)
	}

	reply, err := model.AnalyzeImage(ctx, parser.SystemPrompt, parser.BuildExtractionPrompt(), url)
	if err != nil {
		return nil, domain.NewUpstreamError("model extraction", err)
	}

	env := parser.ExtractEnvelope(reply)
	if env.Type == "" {
		return nil, domain.ErrMissingDocumentType
	}

	res := &domain.ExtractionResult{
		ID:            uuid.New(),
		DocumentID:    doc.ID,
		DocType:       domain.DocType(env.Type),
		ExtractedData: env.Data,
		Status:        domain.ExtractionStatusPendingReview,
	}
	if err := s.extractions.Create(ctx, res); err != nil {
		return nil, err
	}

	if err := s.docs.MarkExtracted(ctx, doc.ID, res.DocType); err != nil {
		return nil, err
	}
	return res, nil
}

// failParsing records the failure on the document with a bounded message;
// the full error goes to the log. The parse context may itself be the cause
// of the failure (timeout, caller cancel), so the status write runs on a
// detached context. Otherwise the document would stay in processing and every
// later parse would hit the busy guard.
func (s *DocumentService) failParsing(ctx context.Context, docID uuid.UUID, cause error) {
	log.Printf("documentService: extraction failed for document %s: %v", docID, cause)
	msg := cause.Error()
	if len(msg) > errorMessageLimit {
		msg = msg[:errorMessageLimit]
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failureRecordTimeout)
	defer cancel()
	if err := s.docs.MarkFailed(ctx, docID, msg); err != nil {
		log.Printf("documentService: recording failure for document %s: %v", docID, err)
	}
}

func validateFile(fileName, contentType string, size, maxSize int64) (string, error) {
	if size > maxSize {
		return "", domain.ErrFileTooLarge
	}

	ext := ""
	if i := strings.LastIndexByte(fileName, '.'); i >= 0 {
		ext = strings.ToLower(fileName[i+1:])
	}
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return "", domain.ErrUnsupportedFileType
	}
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return "", domain.ErrUnsupportedFileType
	}
	return ext, nil
}

// magicBytesMatch verifies the file content against the signature its
// extension claims. The declared content type alone is client-controlled.
func magicBytesMatch(ext string, data []byte) bool {
	switch ext {
	case "pdf":
		return bytes.HasPrefix(data, []byte("%PDF"))
	case "png":
		return bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47})
	case "jpg", "jpeg":
		return bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF})
	default:
		return false
	}
}

func storageKey(companyID uuid.UUID, ext string) string {
	return fmt.Sprintf("companies/%s/%s.%s", companyID, uuid.New(), ext)
}
