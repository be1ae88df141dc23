package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"finsight/internal/domain"
	"finsight/internal/normalize"
	"finsight/internal/port"
)

// ExtractionService commits reviewed extractions into the typed domain
// tables.
type ExtractionService struct {
	extractions    port.ExtractionRepository
	docs           port.DocumentRepository
	invoices       port.InvoiceRepository
	contracts      port.ContractRepository
	bankStatements port.BankStatementRepository
	payrolls       port.PayrollRepository
}

// NewExtractionService creates an ExtractionService.
func NewExtractionService(
	extractions port.ExtractionRepository,
	docs port.DocumentRepository,
	invoices port.InvoiceRepository,
	contracts port.ContractRepository,
	bankStatements port.BankStatementRepository,
	payrolls port.PayrollRepository,
) *ExtractionService {
	return &ExtractionService{
		extractions:    extractions,
		docs:           docs,
		invoices:       invoices,
		contracts:      contracts,
		bankStatements: bankStatements,
		payrolls:       payrolls,
	}
}

// Approve commits an extraction result. When the reviewer supplies
// corrections they replace the extracted data wholesale; there is no field
// merge. The typed record lands before any status flips so a mapper failure
// leaves the extraction reviewable.
func (s *ExtractionService) Approve(ctx context.Context, extractionID uuid.UUID, corrections json.RawMessage) (*domain.ExtractionResult, error) {
	res, err := s.extractions.GetByID(ctx, extractionID)
	if err != nil {
		return nil, err
	}
	if res.Status == domain.ExtractionStatusApproved {
		return nil, domain.ErrExtractionAlreadyApproved
	}

	doc, err := s.docs.GetByID(ctx, res.DocumentID)
	if err != nil {
		return nil, err
	}

	payload := res.ExtractedData
	if len(corrections) > 0 {
		payload = corrections
	}

	switch res.DocType {
	case domain.DocTypeInvoice:
		err = s.commitInvoice(ctx, doc, payload)
	case domain.DocTypeContract:
		err = s.commitContract(ctx, doc, payload)
	case domain.DocTypeBankStatement:
		err = s.commitBankStatement(ctx, doc, payload)
	case domain.DocTypePayrollRecord:
		err = s.commitPayroll(ctx, doc, payload)
	default:
		// No typed table for this classification; approval still completes.
		log.Printf("extractionService.Approve: no table for doc type %q, skipping commit (extraction %s)", res.DocType, res.ID)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res.Status = domain.ExtractionStatusApproved
	res.UserCorrections = corrections
	res.ReviewedAt = &now
	if err := s.extractions.MarkApproved(ctx, res); err != nil {
		return nil, err
	}

	if err := s.docs.MarkParsed(ctx, doc.ID); err != nil {
		return nil, err
	}

	log.Printf("extractionService.Approve: extraction %s approved for document %s", res.ID, doc.ID)
	return res, nil
}

// GetPendingByDocument returns the latest pending extraction for a document.
func (s *ExtractionService) GetPendingByDocument(ctx context.Context, documentID uuid.UUID) (*domain.ExtractionResult, error) {
	return s.extractions.GetPendingByDocument(ctx, documentID)
}

func (s *ExtractionService) commitInvoice(ctx context.Context, doc *domain.Document, payload json.RawMessage) error {
	var p domain.InvoicePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	return s.invoices.Create(ctx, &domain.Invoice{
		ID:                     uuid.New(),
		CompanyID:              doc.CompanyID,
		DocumentID:             doc.ID,
		InvoiceCode:            p.InvoiceCode,
		InvoiceNumber:          p.InvoiceNumber,
		TotalAmountTaxIncluded: normalize.AmountPtr(p.TotalAmountTaxIncluded),
		VerificationStatus:     domain.VerificationStatusPending,
	})
}

func (s *ExtractionService) commitContract(ctx context.Context, doc *domain.Document, payload json.RawMessage) error {
	var p domain.ContractPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	return s.contracts.Create(ctx, &domain.Contract{
		ID:                 uuid.New(),
		CompanyID:          doc.CompanyID,
		DocumentID:         doc.ID,
		ContractNo:         p.ContractNo,
		Title:              p.Title,
		PartyA:             p.PartyA,
		PartyB:             p.PartyB,
		TotalAmount:        normalize.AmountPtr(p.TotalAmount),
		StartDate:          normalize.DatePtr(p.StartDate),
		EndDate:            normalize.DatePtr(p.EndDate),
		ContractType:       p.ContractType,
		VerificationStatus: domain.VerificationStatusPending,
	})
}

func (s *ExtractionService) commitBankStatement(ctx context.Context, doc *domain.Document, payload json.RawMessage) error {
	var p domain.BankStatementPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	currency := domain.DefaultCurrency
	if p.Currency != nil && *p.Currency != "" {
		currency = *p.Currency
	}

	entries := make([]domain.BankStatementEntry, 0, len(p.Transactions))
	for _, t := range p.Transactions {
		entries = append(entries, domain.BankStatementEntry{
			ID:               uuid.New(),
			CompanyID:        doc.CompanyID,
			DocumentID:       doc.ID,
			TransactionDate:  normalize.DatePtr(t.TransactionDate),
			CounterpartyName: t.CounterpartyName,
			DebitAmount:      normalize.AmountPtr(t.DebitAmount),
			CreditAmount:     normalize.AmountPtr(t.CreditAmount),
			Summary:          t.Summary,
			AccountNumber:    p.AccountNumber,
			AccountName:      p.AccountName,
			BankName:         p.BankName,
			Currency:         currency,
		})
	}
	return s.bankStatements.CreateBatch(ctx, entries)
}

func (s *ExtractionService) commitPayroll(ctx context.Context, doc *domain.Document, payload json.RawMessage) error {
	var p domain.PayrollPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	return s.payrolls.Create(ctx, &domain.PayrollRecord{
		ID:              uuid.New(),
		CompanyID:       doc.CompanyID,
		DocumentID:      doc.ID,
		EmployeeID:      p.EmployeeID,
		PayPeriod:       p.PayPeriod,
		BaseSalary:      normalize.AmountPtr(p.BaseSalary),
		PositionSubsidy: normalize.AmountPtr(p.PositionSubsidy),
		TotalDeductions: normalize.AmountPtr(p.TotalDeductions),
		NetPay:          normalize.AmountPtr(p.NetPay),
	})
}
