package service

import (
	"context"

	"github.com/google/uuid"

	"finsight/internal/domain"
	"finsight/internal/port"
)

// CompanyService manages companies.
type CompanyService struct {
	companies port.CompanyRepository
}

// NewCompanyService creates a CompanyService.
func NewCompanyService(companies port.CompanyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

// Create registers a new company.
func (s *CompanyService) Create(ctx context.Context, name string) (*domain.Company, error) {
	company := &domain.Company{
		ID:   uuid.New(),
		Name: name,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetByID returns a company.
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// List returns all companies.
func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}
