package repository

import (
	"context"
	"time"

	"kycapi/internal/model"
)

// ApplicationFilter narrows List results. Zero values match everything.
type ApplicationFilter struct {
	Status model.Status
}

// ApplicationRepository persists KYC applications. No business logic here.
type ApplicationRepository interface {
	// Create inserts app and returns the stored row, including the id and
	// timestamps assigned by the database.
	Create(ctx context.Context, app *model.Application) (*model.Application, error)

	// FindByID returns ErrNotFound when no application has the id.
	FindByID(ctx context.Context, id string) (*model.Application, error)

	// FindLatestByEmail returns the most recently created application whose
	// contact email equals email, or ErrNotFound.
	FindLatestByEmail(ctx context.Context, email string) (*model.Application, error)

	// UpdateStatus sets status and updated_at on one row. Returns ErrNotFound
	// if the row vanished.
	UpdateStatus(ctx context.Context, id string, status model.Status, updatedAt time.Time) error

	// List returns applications newest first.
	List(ctx context.Context, f ApplicationFilter, pq PageQuery) (*PageResult[model.Application], error)
}
