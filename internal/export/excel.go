// Package export produces XLSX workbooks of the committed domain tables.
package export

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"finsight/internal/port"
)

// Service produces XLSX bytes for the typed tables of a company.
type Service struct {
	companies      port.CompanyRepository
	invoices       port.InvoiceRepository
	bankStatements port.BankStatementRepository
}

// NewService creates an export Service.
func NewService(companies port.CompanyRepository, invoices port.InvoiceRepository, bankStatements port.BankStatementRepository) *Service {
	return &Service{companies: companies, invoices: invoices, bankStatements: bankStatements}
}

// InvoicesXLSX builds a workbook of the company's approved invoices.
// Returns the workbook bytes and a download filename.
func (s *Service) InvoicesXLSX(ctx context.Context, companyID uuid.UUID) ([]byte, string, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	invoices, err := s.invoices.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	f, sheet := newWorkbook("Invoices", []string{
		"Invoice Code",
		"Invoice Number",
		"Total Amount (Tax Incl.)",
		"Verification Status",
		"Created At",
	})
	row := 2
	for _, inv := range invoices {
		setRow(f, sheet, row,
			strOrEmpty(inv.InvoiceCode),
			strOrEmpty(inv.InvoiceNumber),
			floatOrEmpty(inv.TotalAmountTaxIncluded),
			inv.VerificationStatus,
			inv.CreatedAt.Format("2006-01-02"),
		)
		row++
	}
	_ = f.SetColWidth(sheet, "A", "B", 24)
	_ = f.SetColWidth(sheet, "C", "C", 20)
	_ = f.SetColWidth(sheet, "D", "E", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("xlsx write: %w", err)
	}

	log.Printf("export.InvoicesXLSX: company %s, %d rows", companyID, len(invoices))
	return buf.Bytes(), BuildFilename(company.Name, "invoices"), nil
}

// BankStatementsXLSX builds a workbook of the company's approved bank
// statement rows.
func (s *Service) BankStatementsXLSX(ctx context.Context, companyID uuid.UUID) ([]byte, string, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.bankStatements.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	f, sheet := newWorkbook("Bank Statements", []string{
		"Transaction Date",
		"Counterparty",
		"Debit",
		"Credit",
		"Summary",
		"Account Number",
		"Account Name",
		"Bank",
		"Currency",
	})
	row := 2
	for _, e := range entries {
		setRow(f, sheet, row,
			strOrEmpty(e.TransactionDate),
			strOrEmpty(e.CounterpartyName),
			floatOrEmpty(e.DebitAmount),
			floatOrEmpty(e.CreditAmount),
			strOrEmpty(e.Summary),
			strOrEmpty(e.AccountNumber),
			strOrEmpty(e.AccountName),
			strOrEmpty(e.BankName),
			e.Currency,
		)
		row++
	}
	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "D", 14)
	_ = f.SetColWidth(sheet, "E", "E", 40)
	_ = f.SetColWidth(sheet, "F", "H", 22)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("xlsx write: %w", err)
	}

	log.Printf("export.BankStatementsXLSX: company %s, %d rows", companyID, len(entries))
	return buf.Bytes(), BuildFilename(company.Name, "bank_statements"), nil
}

func newWorkbook(sheet string, headers []string) (*excelize.File, string) {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, _ = f.NewSheet(sheet)
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet excelize creates.
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	return f, sheet
}

func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a company name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_company}_{table}_{YYYY-MM-DD}.xlsx
func BuildFilename(companyName, table string) string {
	sanitized := SanitizeFilename(companyName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s_%s.xlsx", sanitized, table, date)
}
