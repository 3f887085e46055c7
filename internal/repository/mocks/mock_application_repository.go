package mocks

import (
	"context"
	"time"

	"kycapi/internal/model"
	"kycapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockApplicationRepository struct {
	mock.Mock
}

var _ repository.ApplicationRepository = (*MockApplicationRepository)(nil)

func (m *MockApplicationRepository) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindLatestByEmail(ctx context.Context, email string) (*model.Application, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.Status, updatedAt time.Time) error {
	args := m.Called(ctx, id, status, updatedAt)
	return args.Error(0)
}

func (m *MockApplicationRepository) List(ctx context.Context, f repository.ApplicationFilter, pq repository.PageQuery) (*repository.PageResult[model.Application], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Application]), args.Error(1)
}
