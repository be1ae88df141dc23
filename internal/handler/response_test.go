package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"finsight/internal/domain"
	"finsight/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"document not found", domain.ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{"extraction not found", domain.ErrExtractionNotFound, http.StatusNotFound, "EXTRACTION_NOT_FOUND"},
		{"company not found", domain.ErrCompanyNotFound, http.StatusNotFound, "COMPANY_NOT_FOUND"},
		{"provider not found", domain.ErrProviderNotFound, http.StatusNotFound, "PROVIDER_NOT_FOUND"},
		{"document busy", domain.ErrDocumentBusy, http.StatusConflict, "DOCUMENT_BUSY"},
		{"already approved", domain.ErrExtractionAlreadyApproved, http.StatusConflict, "ALREADY_APPROVED"},
		{"missing document type", domain.ErrMissingDocumentType, http.StatusUnprocessableEntity, "MISSING_DOCUMENT_TYPE"},
		{"invalid payload", domain.ErrInvalidPayload, http.StatusBadRequest, "INVALID_PAYLOAD"},
		{"unsupported file type", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"file too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"active provider delete", domain.ErrActiveProviderDelete, http.StatusBadRequest, "ACTIVE_PROVIDER"},
		{"upstream failure", domain.NewUpstreamError("model extraction", errors.New("timeout")), http.StatusBadGateway, "UPSTREAM_FAILURE"},
		{"wrapped upstream failure", errors.New("unrelated"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_WrappedSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrDocumentBusy)
	status, code, _ := handler.MapDomainError(wrapped)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DOCUMENT_BUSY", code)
}
