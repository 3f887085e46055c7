package mocks

import (
	"context"

	"kycapi/internal/model"
	"kycapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockKYCService struct {
	mock.Mock
}

var _ service.KYCService = (*MockKYCService)(nil)

func (m *MockKYCService) Submit(ctx context.Context, sub service.Submission) (*service.SubmitResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *MockKYCService) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockKYCService) ListApplications(ctx context.Context, limit, offset int, status string) (*service.ApplicationListResult, error) {
	args := m.Called(ctx, limit, offset, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationListResult), args.Error(1)
}
