package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"finsight/internal/domain"
	"finsight/internal/port"
)

// ConnectionProber checks that a provider endpoint accepts the credentials
// by listing its models.
type ConnectionProber func(ctx context.Context, baseURL, apiKey string) ([]string, error)

// ProviderService manages LLM provider configurations.
type ProviderService struct {
	providers port.ProviderRepository
	probe     ConnectionProber
}

// NewProviderService creates a ProviderService.
func NewProviderService(providers port.ProviderRepository, probe ConnectionProber) *ProviderService {
	return &ProviderService{providers: providers, probe: probe}
}

// ProviderView is a provider with its API key masked for display.
type ProviderView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	BaseURL       string    `json:"base_url"`
	APIKeyMasked  string    `json:"api_key_masked"`
	SelectedModel *string   `json:"selected_model"`
	IsActive      bool      `json:"is_active"`
}

// List returns all providers with masked keys.
func (s *ProviderService) List(ctx context.Context) ([]ProviderView, error) {
	providers, err := s.providers.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ProviderView, 0, len(providers))
	for _, p := range providers {
		views = append(views, toView(p))
	}
	return views, nil
}

// CreateProviderInput carries the fields for a new provider.
type CreateProviderInput struct {
	Name          string
	BaseURL       string
	APIKey        string
	SelectedModel *string
}

// Create registers a provider. The first provider configured becomes active
// automatically so extraction works without a separate activation step.
func (s *ProviderService) Create(ctx context.Context, input CreateProviderInput) (*ProviderView, error) {
	count, err := s.providers.Count(ctx)
	if err != nil {
		return nil, err
	}

	p := &domain.LLMProvider{
		ID:            uuid.New(),
		Name:          input.Name,
		BaseURL:       input.BaseURL,
		APIKey:        input.APIKey,
		SelectedModel: input.SelectedModel,
		IsActive:      count == 0,
	}
	if err := s.providers.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Printf("providerService.Create: provider %s (%s) registered, active=%v", p.Name, p.ID, p.IsActive)
	view := toView(*p)
	return &view, nil
}

// UpdateProviderInput carries the updatable provider fields. Empty APIKey
// keeps the stored key.
type UpdateProviderInput struct {
	Name          string
	BaseURL       string
	APIKey        string
	SelectedModel *string
}

// Update modifies a provider's settings.
func (s *ProviderService) Update(ctx context.Context, id uuid.UUID, input UpdateProviderInput) (*ProviderView, error) {
	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		p.Name = input.Name
	}
	if input.BaseURL != "" {
		p.BaseURL = input.BaseURL
	}
	if input.APIKey != "" {
		p.APIKey = input.APIKey
	}
	if input.SelectedModel != nil {
		p.SelectedModel = input.SelectedModel
	}

	if err := s.providers.Update(ctx, p); err != nil {
		return nil, err
	}
	view := toView(*p)
	return &view, nil
}

// Delete removes a provider. The active provider cannot be deleted; switch
// first.
func (s *ProviderService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.IsActive {
		return domain.ErrActiveProviderDelete
	}
	return s.providers.Delete(ctx, id)
}

// Activate makes the given provider the single active one.
func (s *ProviderService) Activate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.providers.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.providers.Activate(ctx, id); err != nil {
		return err
	}
	log.Printf("providerService.Activate: provider %s is now active", id)
	return nil
}

// TestConnection verifies the credentials against the provider endpoint and
// returns the models it offers.
func (s *ProviderService) TestConnection(ctx context.Context, baseURL, apiKey string) ([]string, error) {
	models, err := s.probe(ctx, baseURL, apiKey)
	if err != nil {
		return nil, domain.NewUpstreamError("provider connection test", err)
	}
	return models, nil
}

func toView(p domain.LLMProvider) ProviderView {
	return ProviderView{
		ID:            p.ID,
		Name:          p.Name,
		BaseURL:       p.BaseURL,
		APIKeyMasked:  MaskAPIKey(p.APIKey),
		SelectedModel: p.SelectedModel,
		IsActive:      p.IsActive,
	}
}

// MaskAPIKey hides all but the edges of a key, e.g. "sk-a...f9qz". Short
// keys are fully masked.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
