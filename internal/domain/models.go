package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Company represents an organization whose documents are processed.
type Company struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Document represents an uploaded file plus its processing status.
// FileType starts as the upload content type and is overwritten with the
// detected document type once extraction succeeds.
type Document struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	CompanyID    uuid.UUID      `db:"company_id" json:"company_id"`
	Name         string         `db:"name" json:"name"`
	StoragePath  string         `db:"storage_path" json:"storage_path"`
	FileType     string         `db:"file_type" json:"file_type"`
	Status       DocumentStatus `db:"status" json:"status"`
	ErrorMessage string         `db:"error_message" json:"error_message"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// ExtractionResult holds the model's structured output for a document,
// pending human review.
type ExtractionResult struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	DocumentID      uuid.UUID        `db:"document_id" json:"document_id"`
	DocType         DocType          `db:"doc_type" json:"doc_type"`
	ExtractedData   json.RawMessage  `db:"extracted_data" json:"extracted_data"`
	Status          ExtractionStatus `db:"status" json:"status"`
	UserCorrections json.RawMessage  `db:"user_corrections" json:"user_corrections,omitempty"`
	ReviewedAt      *time.Time       `db:"reviewed_at" json:"reviewed_at"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
}

// Invoice is the typed projection of an approved invoice extraction.
type Invoice struct {
	ID                     uuid.UUID `db:"id" json:"id"`
	CompanyID              uuid.UUID `db:"company_id" json:"company_id"`
	DocumentID             uuid.UUID `db:"document_id" json:"document_id"`
	InvoiceCode            *string   `db:"invoice_code" json:"invoice_code"`
	InvoiceNumber          *string   `db:"invoice_number" json:"invoice_number"`
	TotalAmountTaxIncluded *float64  `db:"total_amount_tax_included" json:"total_amount_tax_included"`
	VerificationStatus     string    `db:"verification_status" json:"verification_status"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// Contract is the typed projection of an approved contract extraction.
// Dates are stored in canonical YYYY-MM-DD form.
type Contract struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	CompanyID          uuid.UUID `db:"company_id" json:"company_id"`
	DocumentID         uuid.UUID `db:"document_id" json:"document_id"`
	ContractNo         *string   `db:"contract_no" json:"contract_no"`
	Title              *string   `db:"title" json:"title"`
	PartyA             *string   `db:"party_a" json:"party_a"`
	PartyB             *string   `db:"party_b" json:"party_b"`
	TotalAmount        *float64  `db:"total_amount" json:"total_amount"`
	StartDate          *string   `db:"start_date" json:"start_date"`
	EndDate            *string   `db:"end_date" json:"end_date"`
	ContractType       *string   `db:"contract_type" json:"contract_type"`
	VerificationStatus string    `db:"verification_status" json:"verification_status"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// BankStatementEntry is one transaction row from an approved bank statement.
// Statement-level account metadata is copied onto every row.
type BankStatementEntry struct {
	ID               uuid.UUID `db:"id" json:"id"`
	CompanyID        uuid.UUID `db:"company_id" json:"company_id"`
	DocumentID       uuid.UUID `db:"document_id" json:"document_id"`
	TransactionDate  *string   `db:"transaction_date" json:"transaction_date"`
	CounterpartyName *string   `db:"counterparty_name" json:"counterparty_name"`
	DebitAmount      *float64  `db:"debit_amount" json:"debit_amount"`
	CreditAmount     *float64  `db:"credit_amount" json:"credit_amount"`
	Summary          *string   `db:"summary" json:"summary"`
	AccountNumber    *string   `db:"account_number" json:"account_number"`
	AccountName      *string   `db:"account_name" json:"account_name"`
	BankName         *string   `db:"bank_name" json:"bank_name"`
	Currency         string    `db:"currency" json:"currency"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// PayrollRecord is the typed projection of an approved payroll extraction.
type PayrollRecord struct {
	ID              uuid.UUID `db:"id" json:"id"`
	CompanyID       uuid.UUID `db:"company_id" json:"company_id"`
	DocumentID      uuid.UUID `db:"document_id" json:"document_id"`
	EmployeeID      *string   `db:"employee_id" json:"employee_id"`
	PayPeriod       *string   `db:"pay_period" json:"pay_period"`
	BaseSalary      *float64  `db:"base_salary" json:"base_salary"`
	PositionSubsidy *float64  `db:"position_subsidy" json:"position_subsidy"`
	TotalDeductions *float64  `db:"total_deductions" json:"total_deductions"`
	NetPay          *float64  `db:"net_pay" json:"net_pay"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// LLMProvider stores a configured model provider. At most one is active.
type LLMProvider struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	BaseURL       string    `db:"base_url" json:"base_url"`
	APIKey        string    `db:"api_key" json:"-"`
	SelectedModel *string   `db:"selected_model" json:"selected_model"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
