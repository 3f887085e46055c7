package mocks

import (
	"context"

	"kycapi/internal/esign"
	"kycapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockSignatureService struct {
	mock.Mock
}

var _ service.SignatureService = (*MockSignatureService)(nil)

func (m *MockSignatureService) SendEnvelope(ctx context.Context, req service.EnvelopeRequest) (*esign.EnvelopeSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*esign.EnvelopeSummary), args.Error(1)
}

func (m *MockSignatureService) CompleteConsent(ctx context.Context, code string) (*service.ConsentResult, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConsentResult), args.Error(1)
}
