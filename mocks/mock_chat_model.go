package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockChatModel is a mock implementation of port.ChatModel.
type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

func (m *MockChatModel) AnalyzeImage(ctx context.Context, system, user, imageURL string) (string, error) {
	args := m.Called(ctx, system, user, imageURL)
	return args.String(0), args.Error(1)
}

func (m *MockChatModel) ListModels(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
