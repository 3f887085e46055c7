package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"kycapi/internal/esign"
	"kycapi/internal/logging"
	"kycapi/internal/model"
)

// EnvelopeClient is the part of the e-signature provider the service uses.
// Implemented by esign.Client.
type EnvelopeClient interface {
	CheckAccount(ctx context.Context) (*esign.AccountInfo, error)
	CreateEnvelope(ctx context.Context, def esign.EnvelopeDefinition) (*esign.EnvelopeSummary, error)
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
}

// Templates names the NDA template for each investor type.
type Templates struct {
	Individual    string
	Institutional string
}

// EnvelopeRequest is an NDA acceptance as carried by the emailed link.
// UserData and CompanyData are raw JSON.
type EnvelopeRequest struct {
	InvestorType string
	UserData     string
	CompanyData  string
}

// ConsentResult describes the token obtained from an authorization code.
// The token itself is never returned to callers.
type ConsentResult struct {
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SignatureService sends NDA envelopes for signature.
type SignatureService interface {
	// SendEnvelope verifies the provider account, then creates an envelope
	// from the template matching the investor type. Account and credential
	// failures are *esign.ProviderAuthError.
	SendEnvelope(ctx context.Context, req EnvelopeRequest) (*esign.EnvelopeSummary, error)

	// CompleteConsent exchanges an authorization code from the consent redirect.
	CompleteConsent(ctx context.Context, code string) (*ConsentResult, error)
}

type signatureService struct {
	client    EnvelopeClient
	templates Templates
	now       func() time.Time
}

// NewSignatureService constructs a new SignatureService. A nil client makes
// every call fail with a *esign.ProviderAuthError.
func NewSignatureService(client EnvelopeClient, templates Templates) SignatureService {
	return &signatureService{client: client, templates: templates, now: time.Now}
}

var errNotConfigured = &esign.ProviderAuthError{Reason: "DocuSign integration is not configured"}

func (s *signatureService) SendEnvelope(ctx context.Context, req EnvelopeRequest) (*esign.EnvelopeSummary, error) {
	if req.InvestorType == "" {
		return nil, goerr.Wrap(ErrMissingField, "missing required parameters")
	}
	if s.client == nil {
		return nil, errNotConfigured
	}
	logger := logging.From(ctx).With("component", "esign", "investor_type", req.InvestorType)

	if _, err := s.client.CheckAccount(ctx); err != nil {
		logger.Error("docusign account check failed", "error", err.Error())
		return nil, err
	}

	def, err := s.envelope(req)
	if err != nil {
		return nil, err
	}

	sum, err := s.client.CreateEnvelope(ctx, def)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send DocuSign envelope", goerr.V("investor_type", req.InvestorType))
	}
	logger.Info("docusign envelope sent", "envelope_id", sum.EnvelopeID)
	return sum, nil
}

func (s *signatureService) envelope(req EnvelopeRequest) (esign.EnvelopeDefinition, error) {
	switch {
	case req.InvestorType == string(model.InvestorIndividual) && req.UserData != "":
		var signer esign.IndividualSigner
		if err := json.Unmarshal([]byte(req.UserData), &signer); err != nil {
			return esign.EnvelopeDefinition{}, &MalformedFieldError{Field: "userData", Err: err}
		}
		return esign.IndividualEnvelope(s.templates.Individual, signer, s.now())
	case req.InvestorType == string(model.InvestorInstitutional) && req.CompanyData != "":
		var signer esign.InstitutionalSigner
		if err := json.Unmarshal([]byte(req.CompanyData), &signer); err != nil {
			return esign.EnvelopeDefinition{}, &MalformedFieldError{Field: "companyData", Err: err}
		}
		return esign.InstitutionalEnvelope(s.templates.Institutional, signer)
	}
	return esign.EnvelopeDefinition{}, goerr.Wrap(ErrUnsupportedInvestorType, "cannot build envelope", goerr.V("investor_type", req.InvestorType))
}

func (s *signatureService) CompleteConsent(ctx context.Context, code string) (*ConsentResult, error) {
	if code == "" {
		return nil, goerr.Wrap(ErrMissingField, "authorization code is missing")
	}
	if s.client == nil {
		return nil, errNotConfigured
	}
	tok, err := s.client.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	logging.From(ctx).Info("docusign consent completed", "component", "esign", "expires_at", tok.Expiry)
	return &ConsentResult{TokenType: tok.Type(), ExpiresAt: tok.Expiry}, nil
}
