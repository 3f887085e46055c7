package mocks

import (
	"context"

	"kycapi/internal/mail"

	"github.com/stretchr/testify/mock"
)

type MockSender struct {
	mock.Mock
}

var _ mail.Sender = (*MockSender)(nil)

func (m *MockSender) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
