package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"finsight/internal/domain"
)

// MockProviderRepo is a mock implementation of port.ProviderRepository.
type MockProviderRepo struct {
	mock.Mock
}

func (m *MockProviderRepo) Create(ctx context.Context, p *domain.LLMProvider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProviderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LLMProvider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LLMProvider), args.Error(1)
}

func (m *MockProviderRepo) GetActive(ctx context.Context) (*domain.LLMProvider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LLMProvider), args.Error(1)
}

func (m *MockProviderRepo) List(ctx context.Context) ([]domain.LLMProvider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LLMProvider), args.Error(1)
}

func (m *MockProviderRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProviderRepo) Update(ctx context.Context, p *domain.LLMProvider) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProviderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProviderRepo) Activate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
