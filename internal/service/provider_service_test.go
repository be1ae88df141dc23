package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"finsight/internal/domain"
	"finsight/internal/service"
	"finsight/mocks"
)

func TestProviderCreate_FirstProviderAutoActivates(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, nil)

	repo.On("Count", mock.Anything).Return(0, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.LLMProvider) bool {
		return p.IsActive
	})).Return(nil)

	view, err := svc.Create(context.Background(), service.CreateProviderInput{
		Name:    "openrouter",
		BaseURL: "https://openrouter.ai/api/v1",
		APIKey:  "sk-or-v1-abcdef123456",
	})
	require.NoError(t, err)
	assert.True(t, view.IsActive)
	repo.AssertExpectations(t)
}

func TestProviderCreate_SecondProviderStaysInactive(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, nil)

	repo.On("Count", mock.Anything).Return(1, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.LLMProvider) bool {
		return !p.IsActive
	})).Return(nil)

	view, err := svc.Create(context.Background(), service.CreateProviderInput{
		Name:    "backup",
		BaseURL: "https://api.example.com/v1",
		APIKey:  "sk-backup-9876543210",
	})
	require.NoError(t, err)
	assert.False(t, view.IsActive)
}

func TestProviderList_MasksAPIKeys(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, nil)

	repo.On("List", mock.Anything).Return([]domain.LLMProvider{
		{ID: uuid.New(), Name: "a", APIKey: "sk-or-v1-abcdef9qzw"},
		{ID: uuid.New(), Name: "b", APIKey: "short"},
	}, nil)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "sk-o...9qzw", views[0].APIKeyMasked)
	assert.Equal(t, "********", views[1].APIKeyMasked)
}

func TestProviderDelete_ActiveProviderRejected(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, nil)

	p := &domain.LLMProvider{ID: uuid.New(), IsActive: true}
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

	err := svc.Delete(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrActiveProviderDelete)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProviderDelete_InactiveProvider(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, nil)

	p := &domain.LLMProvider{ID: uuid.New(), IsActive: false}
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Delete", mock.Anything, p.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	repo.AssertExpectations(t)
}

func TestProviderActivate(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, nil)

	p := &domain.LLMProvider{ID: uuid.New()}
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Activate", mock.Anything, p.ID).Return(nil)

	require.NoError(t, svc.Activate(context.Background(), p.ID))
	repo.AssertExpectations(t)
}

func TestProviderActivate_NotFound(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, nil)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrProviderNotFound)

	err := svc.Activate(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
	repo.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
}

func TestProviderUpdate_EmptyAPIKeyKeepsStoredKey(t *testing.T) {
	repo := new(mocks.MockProviderRepo)
	svc := service.NewProviderService(repo, nil)

	p := &domain.LLMProvider{ID: uuid.New(), Name: "old", APIKey: "sk-keepme-123456789"}
	repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(updated *domain.LLMProvider) bool {
		return updated.Name == "new" && updated.APIKey == "sk-keepme-123456789"
	})).Return(nil)

	_, err := svc.Update(context.Background(), p.ID, service.UpdateProviderInput{Name: "new"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProviderTestConnection(t *testing.T) {
	probe := func(ctx context.Context, baseURL, apiKey string) ([]string, error) {
		return []string{"model-a", "model-b"}, nil
	}
	svc := service.NewProviderService(new(mocks.MockProviderRepo), probe)

	models, err := svc.TestConnection(context.Background(), "https://api.example.com/v1", "sk-test")
	require.NoError(t, err)
	assert.Equal(t, []string{"model-a", "model-b"}, models)
}

func TestProviderTestConnection_FailureWrapsUpstream(t *testing.T) {
	probe := func(ctx context.Context, baseURL, apiKey string) ([]string, error) {
		return nil, errors.New("401 unauthorized")
	}
	svc := service.NewProviderService(new(mocks.MockProviderRepo), probe)

	_, err := svc.TestConnection(context.Background(), "https://api.example.com/v1", "bad-key")
	var upstream *domain.UpstreamError
	assert.ErrorAs(t, err, &upstream)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "sk-a...wxyz", service.MaskAPIKey("sk-abcdefghijklwxyz"))
	assert.Equal(t, "********", service.MaskAPIKey("12345678"))
	assert.Equal(t, "********", service.MaskAPIKey(""))
}
