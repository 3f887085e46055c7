package mocks

import (
	"context"

	"kycapi/internal/model"
	"kycapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockKnowledgeService struct {
	mock.Mock
}

var _ service.KnowledgeService = (*MockKnowledgeService)(nil)

func (m *MockKnowledgeService) AddData(ctx context.Context, req service.AddDataRequest) (*model.KnowledgeEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.KnowledgeEntry), args.Error(1)
}

func (m *MockKnowledgeService) Chat(ctx context.Context, req service.ChatRequest) (*service.ChatResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatResponse), args.Error(1)
}
