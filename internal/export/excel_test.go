package export_test

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"finsight/internal/domain"
	"finsight/internal/export"
	"finsight/mocks"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestInvoicesXLSX(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	invoices := new(mocks.MockInvoiceRepo)
	svc := export.NewService(companies, invoices, new(mocks.MockBankStatementRepo))

	companyID := uuid.New()
	companies.On("GetByID", mock.Anything, companyID).
		Return(&domain.Company{ID: companyID, Name: "Acme 商贸有限公司"}, nil)
	invoices.On("ListByCompany", mock.Anything, companyID).Return([]domain.Invoice{
		{InvoiceCode: strPtr("044001"), InvoiceNumber: strPtr("INV-1"), TotalAmountTaxIncluded: floatPtr(1234.5), VerificationStatus: "pending"},
		{InvoiceNumber: strPtr("INV-2"), VerificationStatus: "pending"},
	}, nil)

	data, filename, err := svc.InvoicesXLSX(context.Background(), companyID)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^Acme_invoices_\d{4}-\d{2}-\d{2}\.xlsx$`), filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	// header + 2 data rows
	require.Len(t, rows, 3)
	assert.Equal(t, "Invoice Code", rows[0][0])
	assert.Equal(t, "044001", rows[1][0])
	assert.Equal(t, "INV-2", rows[2][1])
}

func TestBankStatementsXLSX(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	bankStatements := new(mocks.MockBankStatementRepo)
	svc := export.NewService(companies, new(mocks.MockInvoiceRepo), bankStatements)

	companyID := uuid.New()
	companies.On("GetByID", mock.Anything, companyID).
		Return(&domain.Company{ID: companyID, Name: "Acme"}, nil)
	bankStatements.On("ListByCompany", mock.Anything, companyID).Return([]domain.BankStatementEntry{
		{TransactionDate: strPtr("2024-07-01"), DebitAmount: floatPtr(1000), Currency: "CNY"},
		{TransactionDate: strPtr("2024-07-02"), CreditAmount: floatPtr(2500.5), Currency: "CNY"},
		{TransactionDate: strPtr("2024-07-03"), DebitAmount: floatPtr(300), Currency: "CNY"},
	}, nil)

	data, filename, err := svc.BankStatementsXLSX(context.Background(), companyID)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^Acme_bank_statements_\d{4}-\d{2}-\d{2}\.xlsx$`), filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Bank Statements")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "2024-07-01", rows[1][0])
	assert.Equal(t, "CNY", rows[3][8])
}

func TestExport_CompanyNotFound(t *testing.T) {
	companies := new(mocks.MockCompanyRepo)
	svc := export.NewService(companies, new(mocks.MockInvoiceRepo), new(mocks.MockBankStatementRepo))

	companyID := uuid.New()
	companies.On("GetByID", mock.Anything, companyID).Return(nil, domain.ErrCompanyNotFound)

	_, _, err := svc.InvoicesXLSX(context.Background(), companyID)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Acme_Corp", export.SanitizeFilename("Acme Corp"))
	assert.Equal(t, "a-b_c", export.SanitizeFilename("a-b/c"))
	assert.Equal(t, "x", export.SanitizeFilename("__x__"))
	assert.Len(t, export.SanitizeFilename(string(bytes.Repeat([]byte("a"), 150))), 100)
}
