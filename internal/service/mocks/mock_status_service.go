package mocks

import (
	"context"

	"kycapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockStatusService struct {
	mock.Mock
}

var _ service.StatusService = (*MockStatusService)(nil)

func (m *MockStatusService) GetStatus(ctx context.Context, email string) (*service.StatusResult, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatusResult), args.Error(1)
}

func (m *MockStatusService) SetStatus(ctx context.Context, email, status string) (*service.StatusResult, error) {
	args := m.Called(ctx, email, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatusResult), args.Error(1)
}
