package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"kycapi/internal/events"
	"kycapi/internal/logging"
	"kycapi/internal/metrics"
	"kycapi/internal/model"
	"kycapi/internal/repository"
)

// StatusResult is the review state of the latest application for an email.
type StatusResult struct {
	ApplicationID string       `json:"applicationId"`
	Status        model.Status `json:"status"`
	UpdatedAt     *time.Time   `json:"updatedAt,omitempty"`
}

// StatusService reads and changes application review status by contact email.
type StatusService interface {
	GetStatus(ctx context.Context, email string) (*StatusResult, error)

	// SetStatus looks up the latest application for email and updates it by
	// id. The two steps are not atomic; concurrent updates are last write wins.
	SetStatus(ctx context.Context, email, status string) (*StatusResult, error)
}

type statusService struct {
	repo    repository.ApplicationRepository
	events  events.Publisher
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewStatusService constructs a new StatusService.
func NewStatusService(repo repository.ApplicationRepository, pub events.Publisher, m *metrics.Metrics) StatusService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &statusService{repo: repo, events: pub, metrics: m, now: time.Now}
}

func (s *statusService) latest(ctx context.Context, email string) (*model.Application, error) {
	app, err := s.repo.FindLatestByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, goerr.Wrap(ErrApplicationNotFound, "status lookup", goerr.V("email", email))
		}
		return nil, goerr.Wrap(err, "failed to query KYC application", goerr.V("email", email))
	}
	return app, nil
}

func (s *statusService) GetStatus(ctx context.Context, email string) (*StatusResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, goerr.Wrap(ErrMissingField, "email is required")
	}
	app, err := s.latest(ctx, email)
	if err != nil {
		return nil, err
	}
	st := app.Status
	if st == "" {
		st = model.StatusPending
	}
	return &StatusResult{ApplicationID: app.ID, Status: st}, nil
}

func (s *statusService) SetStatus(ctx context.Context, email, status string) (*StatusResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || status == "" {
		return nil, goerr.Wrap(ErrMissingField, "email and status are required")
	}
	st, err := model.ParseStatus(status)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidStatus, err.Error(), goerr.V("email", email))
	}

	app, err := s.latest(ctx, email)
	if err != nil {
		return nil, err
	}

	updatedAt := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, app.ID, st, updatedAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, goerr.Wrap(ErrApplicationNotFound, "application removed during update", goerr.V("id", app.ID))
		}
		return nil, goerr.Wrap(err, "failed to update KYC application status", goerr.V("id", app.ID), goerr.V("status", st))
	}

	s.metrics.StatusTransition(string(app.Status), string(st))
	logger := logging.From(ctx).With("component", "kyc", "application_id", app.ID)
	logger.Info("kyc status updated", "from", string(app.Status), "to", string(st))

	if err := s.events.Publish(ctx, events.Event{
		Type:           events.TypeApplicationStatusChanged,
		ApplicationID:  app.ID,
		Email:          email,
		InvestorType:   string(app.InvestorType),
		Status:         string(st),
		PreviousStatus: string(app.Status),
		OccurredAt:     updatedAt,
	}); err != nil {
		logger.Error("publish status event failed", "error", err.Error())
	}

	return &StatusResult{ApplicationID: app.ID, Status: st, UpdatedAt: &updatedAt}, nil
}
