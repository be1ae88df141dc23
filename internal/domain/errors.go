package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrCompanyNotFound           = errors.New("company not found")
	ErrDocumentNotFound          = errors.New("document not found")
	ErrExtractionNotFound        = errors.New("extraction result not found")
	ErrDocumentBusy              = errors.New("document is already being processed")
	ErrExtractionAlreadyApproved = errors.New("extraction result has already been approved")
	ErrMissingDocumentType       = errors.New("model output did not include a document type")
	ErrInvalidPayload            = errors.New("extracted data does not match the expected shape")
	ErrUnsupportedFileType       = errors.New("unsupported file type")
	ErrFileTooLarge              = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed              = errors.New("file upload to storage failed")
	ErrObjectExists              = errors.New("object already exists at storage path")
	ErrProviderNotFound          = errors.New("llm provider not found")
	ErrActiveProviderDelete      = errors.New("cannot delete the active llm provider")
)

// UpstreamError wraps a failure from an external collaborator (object storage
// or model access). The Op names the step that failed.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates an UpstreamError for the given step.
func NewUpstreamError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}
