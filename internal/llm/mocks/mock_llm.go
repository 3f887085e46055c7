package mocks

import (
	"context"

	"kycapi/internal/llm"

	"github.com/stretchr/testify/mock"
)

type MockEmbedder struct {
	mock.Mock
}

var _ llm.Embedder = (*MockEmbedder)(nil)

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

type MockCompleter struct {
	mock.Mock
}

var _ llm.Completer = (*MockCompleter)(nil)

func (m *MockCompleter) Complete(ctx context.Context, systemPrompt string, history []llm.Turn, query string) (string, error) {
	args := m.Called(ctx, systemPrompt, history, query)
	return args.String(0), args.Error(1)
}
