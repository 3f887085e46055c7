package mocks

import (
	"context"

	"kycapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage records uploads. PublicURL is fixed so tests need not stub it.
type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

func (m *MockStorage) Put(ctx context.Context, obj storage.Object) (storage.Stored, error) {
	args := m.Called(ctx, obj)
	return args.Get(0).(storage.Stored), args.Error(1)
}

func (m *MockStorage) PublicURL(key string) string {
	return "https://storage.test/kyc-documents/" + key
}
