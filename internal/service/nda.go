package service

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// NDANotifier emails an NDA request to the admin. Implemented by notification.Notifier.
type NDANotifier interface {
	SendNDA(ctx context.Context, investorType string, data map[string]any) bool
}

// NDARequest is the payload of an NDA request. Data holds either the user
// data of an individual or the company data of an institution.
type NDARequest struct {
	InvestorType string
	Data         map[string]any
}

// NDAService forwards NDA requests to the admin.
type NDAService interface {
	SendNDA(ctx context.Context, req NDARequest) error
}

type ndaService struct {
	notifier NDANotifier
}

// NewNDAService constructs a new NDAService.
func NewNDAService(n NDANotifier) NDAService {
	return &ndaService{notifier: n}
}

func (s *ndaService) SendNDA(ctx context.Context, req NDARequest) error {
	if req.InvestorType == "" || len(req.Data) == 0 {
		return goerr.Wrap(ErrMissingField, "investor type and user or company data are required")
	}
	if !s.notifier.SendNDA(ctx, req.InvestorType, req.Data) {
		return goerr.Wrap(ErrNotificationFailed, "failed to send NDA email", goerr.V("investor_type", req.InvestorType))
	}
	return nil
}
