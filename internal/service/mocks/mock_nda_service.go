package mocks

import (
	"context"

	"kycapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockNDAService struct {
	mock.Mock
}

var _ service.NDAService = (*MockNDAService)(nil)

func (m *MockNDAService) SendNDA(ctx context.Context, req service.NDARequest) error {
	return m.Called(ctx, req).Error(0)
}
