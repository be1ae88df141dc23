package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"finsight/internal/domain"
)

// MockCompanyRepo is a mock implementation of port.CompanyRepository.
type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

// MockContractRepo is a mock implementation of port.ContractRepository.
type MockContractRepo struct {
	mock.Mock
}

func (m *MockContractRepo) Create(ctx context.Context, con *domain.Contract) error {
	args := m.Called(ctx, con)
	return args.Error(0)
}

func (m *MockContractRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.Contract, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

// MockBankStatementRepo is a mock implementation of port.BankStatementRepository.
type MockBankStatementRepo struct {
	mock.Mock
}

func (m *MockBankStatementRepo) CreateBatch(ctx context.Context, entries []domain.BankStatementEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockBankStatementRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.BankStatementEntry, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankStatementEntry), args.Error(1)
}

// MockPayrollRepo is a mock implementation of port.PayrollRepository.
type MockPayrollRepo struct {
	mock.Mock
}

func (m *MockPayrollRepo) Create(ctx context.Context, rec *domain.PayrollRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockPayrollRepo) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.PayrollRecord, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollRecord), args.Error(1)
}
