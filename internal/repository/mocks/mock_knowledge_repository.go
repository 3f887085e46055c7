package mocks

import (
	"context"

	"kycapi/internal/model"
	"kycapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockKnowledgeRepository struct {
	mock.Mock
}

var _ repository.KnowledgeRepository = (*MockKnowledgeRepository)(nil)

func (m *MockKnowledgeRepository) Create(ctx context.Context, e *model.KnowledgeEntry) (*model.KnowledgeEntry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.KnowledgeEntry), args.Error(1)
}

func (m *MockKnowledgeRepository) MatchDocuments(ctx context.Context, embedding []float32, threshold float64, count int) ([]model.KnowledgeMatch, error) {
	args := m.Called(ctx, embedding, threshold, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.KnowledgeMatch), args.Error(1)
}

func (m *MockKnowledgeRepository) SearchKeyword(ctx context.Context, query string, limit int) ([]model.KnowledgeMatch, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.KnowledgeMatch), args.Error(1)
}
