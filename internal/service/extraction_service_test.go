package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"finsight/internal/domain"
	"finsight/internal/service"
	"finsight/mocks"
)

type extractionFixture struct {
	extractions    *mocks.MockExtractionRepo
	docs           *mocks.MockDocumentRepo
	invoices       *mocks.MockInvoiceRepo
	contracts      *mocks.MockContractRepo
	bankStatements *mocks.MockBankStatementRepo
	payrolls       *mocks.MockPayrollRepo
	svc            *service.ExtractionService
}

func newExtractionFixture() *extractionFixture {
	f := &extractionFixture{
		extractions:    new(mocks.MockExtractionRepo),
		docs:           new(mocks.MockDocumentRepo),
		invoices:       new(mocks.MockInvoiceRepo),
		contracts:      new(mocks.MockContractRepo),
		bankStatements: new(mocks.MockBankStatementRepo),
		payrolls:       new(mocks.MockPayrollRepo),
	}
	f.svc = service.NewExtractionService(
		f.extractions, f.docs, f.invoices, f.contracts, f.bankStatements, f.payrolls,
	)
	return f
}

func (f *extractionFixture) pending(docType domain.DocType, data string) (*domain.ExtractionResult, *domain.Document) {
	doc := &domain.Document{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Status:    domain.DocumentStatusExtracted,
	}
	res := &domain.ExtractionResult{
		ID:            uuid.New(),
		DocumentID:    doc.ID,
		DocType:       docType,
		ExtractedData: json.RawMessage(data),
		Status:        domain.ExtractionStatusPendingReview,
	}
	f.extractions.On("GetByID", mock.Anything, res.ID).Return(res, nil)
	f.docs.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	return res, doc
}

func (f *extractionFixture) expectFinalize(res *domain.ExtractionResult, doc *domain.Document) {
	f.extractions.On("MarkApproved", mock.Anything, res).Return(nil)
	f.docs.On("MarkParsed", mock.Anything, doc.ID).Return(nil)
}

func TestApprove_Invoice(t *testing.T) {
	f := newExtractionFixture()
	res, doc := f.pending(domain.DocTypeInvoice,
		`{"invoice_code": "044001", "invoice_number": "INV-42", "total_amount_tax_included": "¥1,234.50"}`)

	f.invoices.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.CompanyID == doc.CompanyID &&
			inv.DocumentID == doc.ID &&
			*inv.InvoiceNumber == "INV-42" &&
			*inv.TotalAmountTaxIncluded == 1234.50 &&
			inv.VerificationStatus == "pending"
	})).Return(nil)
	f.expectFinalize(res, doc)

	approved, err := f.svc.Approve(context.Background(), res.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ExtractionStatusApproved, approved.Status)
	assert.NotNil(t, approved.ReviewedAt)

	f.invoices.AssertExpectations(t)
	f.docs.AssertExpectations(t)
}

func TestApprove_CorrectionsReplaceExtractedData(t *testing.T) {
	f := newExtractionFixture()
	res, doc := f.pending(domain.DocTypeInvoice,
		`{"invoice_number": "WRONG", "total_amount_tax_included": 1}`)

	corrections := json.RawMessage(`{"invoice_number": "RIGHT", "total_amount_tax_included": 99.5}`)

	f.invoices.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return *inv.InvoiceNumber == "RIGHT" && *inv.TotalAmountTaxIncluded == 99.5
	})).Return(nil)
	f.expectFinalize(res, doc)

	approved, err := f.svc.Approve(context.Background(), res.ID, corrections)
	require.NoError(t, err)
	assert.JSONEq(t, string(corrections), string(approved.UserCorrections))
}

func TestApprove_Contract(t *testing.T) {
	f := newExtractionFixture()
	res, doc := f.pending(domain.DocTypeContract,
		`{"contract_no": "HT-2024-001", "title": "服务合同", "party_a": "甲方公司", "party_b": "乙方公司",
		  "total_amount": "￥500,000", "start_date": "2024年1月1日", "end_date": "2024/12/31", "contract_type": "service"}`)

	f.contracts.On("Create", mock.Anything, mock.MatchedBy(func(con *domain.Contract) bool {
		return *con.ContractNo == "HT-2024-001" &&
			*con.TotalAmount == 500000.0 &&
			*con.StartDate == "2024-01-01" &&
			*con.EndDate == "2024-12-31" &&
			con.VerificationStatus == "pending"
	})).Return(nil)
	f.expectFinalize(res, doc)

	_, err := f.svc.Approve(context.Background(), res.ID, nil)
	require.NoError(t, err)
	f.contracts.AssertExpectations(t)
}

func TestApprove_BankStatementOneRowPerTransaction(t *testing.T) {
	f := newExtractionFixture()
	res, doc := f.pending(domain.DocTypeBankStatement,
		`{"account_name": "某公司", "account_number": "6222000011112222", "bank_name": "中国银行",
		  "transactions": [
		    {"transaction_date": "2024年7月1日", "counterparty_name": "供应商A", "debit_amount": "¥1,000.00", "summary": "货款"},
		    {"transaction_date": "2024/7/2", "credit_amount": 2500.5, "counterparty_name": "客户B"},
		    {"transaction_date": "2024-07-03", "debit_amount": "300"}
		  ]}`)

	f.bankStatements.On("CreateBatch", mock.Anything, mock.MatchedBy(func(entries []domain.BankStatementEntry) bool {
		if len(entries) != 3 {
			return false
		}
		for _, e := range entries {
			// Statement-level metadata is copied onto every row, and the
			// currency falls back to CNY when the model omits it.
			if e.CompanyID != doc.CompanyID || e.DocumentID != doc.ID ||
				*e.AccountNumber != "6222000011112222" || *e.BankName != "中国银行" ||
				e.Currency != "CNY" {
				return false
			}
		}
		return *entries[0].TransactionDate == "2024-07-01" &&
			*entries[0].DebitAmount == 1000.0 &&
			*entries[1].TransactionDate == "2024-07-02" &&
			*entries[1].CreditAmount == 2500.5 &&
			*entries[2].TransactionDate == "2024-07-03" &&
			*entries[2].DebitAmount == 300.0
	})).Return(nil)
	f.expectFinalize(res, doc)

	_, err := f.svc.Approve(context.Background(), res.ID, nil)
	require.NoError(t, err)
	f.bankStatements.AssertExpectations(t)
}

func TestApprove_Payroll(t *testing.T) {
	f := newExtractionFixture()
	res, doc := f.pending(domain.DocTypePayrollRecord,
		`{"employee_id": "E-1001", "pay_period": "2024-07", "base_salary": "8,000",
		  "position_subsidy": 500, "total_deductions": "1,200.50", "net_pay": "¥7,299.50"}`)

	f.payrolls.On("Create", mock.Anything, mock.MatchedBy(func(rec *domain.PayrollRecord) bool {
		return *rec.EmployeeID == "E-1001" &&
			*rec.BaseSalary == 8000.0 &&
			*rec.PositionSubsidy == 500.0 &&
			*rec.TotalDeductions == 1200.50 &&
			*rec.NetPay == 7299.50
	})).Return(nil)
	f.expectFinalize(res, doc)

	_, err := f.svc.Approve(context.Background(), res.ID, nil)
	require.NoError(t, err)
	f.payrolls.AssertExpectations(t)
}

func TestApprove_UnknownTypeSkipsCommitButApproves(t *testing.T) {
	f := newExtractionFixture()
	res, doc := f.pending(domain.DocTypeOther, `{"note": "handwritten memo"}`)
	f.expectFinalize(res, doc)

	approved, err := f.svc.Approve(context.Background(), res.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ExtractionStatusApproved, approved.Status)

	f.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.bankStatements.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	f.payrolls.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.docs.AssertCalled(t, "MarkParsed", mock.Anything, doc.ID)
}

func TestApprove_AlreadyApproved(t *testing.T) {
	f := newExtractionFixture()
	res := &domain.ExtractionResult{
		ID:      uuid.New(),
		DocType: domain.DocTypeInvoice,
		Status:  domain.ExtractionStatusApproved,
	}
	f.extractions.On("GetByID", mock.Anything, res.ID).Return(res, nil)

	_, err := f.svc.Approve(context.Background(), res.ID, nil)
	assert.ErrorIs(t, err, domain.ErrExtractionAlreadyApproved)
	f.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApprove_NotFound(t *testing.T) {
	f := newExtractionFixture()
	id := uuid.New()
	f.extractions.On("GetByID", mock.Anything, id).Return(nil, domain.ErrExtractionNotFound)

	_, err := f.svc.Approve(context.Background(), id, nil)
	assert.ErrorIs(t, err, domain.ErrExtractionNotFound)
}

func TestApprove_InvalidPayloadAbortsBeforeStatusChange(t *testing.T) {
	f := newExtractionFixture()
	res, _ := f.pending(domain.DocTypeInvoice, `"not an object"`)

	_, err := f.svc.Approve(context.Background(), res.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	f.extractions.AssertNotCalled(t, "MarkApproved", mock.Anything, mock.Anything)
	f.docs.AssertNotCalled(t, "MarkParsed", mock.Anything, mock.Anything)
}
