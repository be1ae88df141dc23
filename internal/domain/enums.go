package domain

// DocumentStatus represents the lifecycle of an uploaded document.
type DocumentStatus string

const (
	DocumentStatusUploaded   DocumentStatus = "uploaded"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusExtracted  DocumentStatus = "extracted"
	DocumentStatusParsed     DocumentStatus = "parsed"
	DocumentStatusError      DocumentStatus = "error"
)

// ExtractionStatus represents the review state of an extraction result.
type ExtractionStatus string

const (
	ExtractionStatusPendingReview ExtractionStatus = "pending_review"
	ExtractionStatusApproved      ExtractionStatus = "approved"
)

// DocType is the document classification returned by the model.
type DocType string

const (
	DocTypeInvoice       DocType = "invoice"
	DocTypeContract      DocType = "contract"
	DocTypeBankStatement DocType = "bank_statement"
	DocTypePayrollRecord DocType = "payroll_record"
	DocTypeOther         DocType = "other"
)

// VerificationStatusPending is the initial human-verification flag set on
// invoice and contract records at approval time.
const VerificationStatusPending = "pending"

// DefaultCurrency is applied to bank statement rows when the model omits one.
const DefaultCurrency = "CNY"

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}
