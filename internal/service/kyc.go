package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"kycapi/internal/events"
	"kycapi/internal/logging"
	"kycapi/internal/metrics"
	"kycapi/internal/model"
	"kycapi/internal/repository"
)

// Submission is a KYC application as received from the multipart form.
// The JSON fields are kept raw and decoded by Submit.
type Submission struct {
	InvestorType          string
	ContactInfo           string
	Declarations          string
	EDDScreening          string
	InvestorDetails       string
	BeneficialOwners      string
	AuthorizedSignatories string
	Files                 map[model.DocumentType][]model.UploadedFile
}

// SubmitResult is returned to the applicant after a successful submission.
type SubmitResult struct {
	ApplicationID string          `json:"applicationId"`
	Documents     model.Documents `json:"documents"`
}

// ApplicationListResult is the service-level DTO for paginated applications.
type ApplicationListResult struct {
	Items []model.Application `json:"data"`
	Total int                 `json:"total"`
}

// DocumentUploader stores one uploaded file. Implemented by storage.DocumentStore.
type DocumentUploader interface {
	Upload(ctx context.Context, file model.UploadedFile, ownerKey, fieldName string, index int) (model.DocumentReference, error)
}

// ApplicationNotifier sends the submission emails. Implemented by notification.Notifier.
type ApplicationNotifier interface {
	SendApplicationEmails(ctx context.Context, app *model.Application) bool
}

// KYCService defines the KYC submission use cases.
type KYCService interface {
	// Submit uploads every file, stores the application as pending and
	// notifies the applicant and the admin.
	Submit(ctx context.Context, sub Submission) (*SubmitResult, error)

	// GetApplication returns one application by id.
	GetApplication(ctx context.Context, id string) (*model.Application, error)

	// ListApplications returns applications newest first, optionally filtered by status.
	ListApplications(ctx context.Context, limit, offset int, status string) (*ApplicationListResult, error)
}

type kycService struct {
	repo     repository.ApplicationRepository
	docs     DocumentUploader
	notifier ApplicationNotifier
	events   events.Publisher
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewKYCService constructs a new KYCService.
func NewKYCService(repo repository.ApplicationRepository, docs DocumentUploader, notifier ApplicationNotifier, pub events.Publisher, m *metrics.Metrics) KYCService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &kycService{
		repo:     repo,
		docs:     docs,
		notifier: notifier,
		events:   pub,
		metrics:  m,
		now:      time.Now,
	}
}

type parsedSubmission struct {
	investorType model.InvestorType
	contact      model.ContactInfo
	declarations []model.Declaration
	edd          model.EDDScreening
	details      model.InvestorDetails
	owners       []model.BeneficialOwner
	signatories  []model.AuthorizedSignatory
}

func decodeField(name, raw string, dst any) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return &MalformedFieldError{Field: name, Err: err}
	}
	return nil
}

func parseSubmission(sub Submission) (*parsedSubmission, error) {
	if sub.InvestorType == "" {
		return nil, goerr.Wrap(ErrMissingField, "investorType is required")
	}
	p := &parsedSubmission{investorType: model.InvestorType(sub.InvestorType)}
	if !p.investorType.Valid() {
		return nil, goerr.Wrap(ErrMissingField, "investorType must be individual or institutional", goerr.V("investorType", sub.InvestorType))
	}

	if strings.TrimSpace(sub.ContactInfo) == "" {
		return nil, goerr.Wrap(ErrMissingField, "contactInfo is required")
	}
	if err := decodeField("contactInfo", sub.ContactInfo, &p.contact); err != nil {
		return nil, err
	}
	if err := decodeField("declarations", sub.Declarations, &p.declarations); err != nil {
		return nil, err
	}
	if err := decodeField("eddScreening", sub.EDDScreening, &p.edd); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sub.InvestorDetails) == "" {
		return nil, goerr.Wrap(ErrMissingField, "investorDetails is required")
	}
	details, err := model.ParseInvestorDetails(p.investorType, []byte(sub.InvestorDetails))
	if err != nil {
		return nil, &MalformedFieldError{Field: "investorDetails", Err: err}
	}
	p.details = details

	if p.investorType == model.InvestorInstitutional {
		if err := decodeField("beneficialOwners", sub.BeneficialOwners, &p.owners); err != nil {
			return nil, err
		}
		if err := decodeField("authorizedSignatories", sub.AuthorizedSignatories, &p.signatories); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(p.contact.Email) == "" {
		return nil, goerr.Wrap(ErrMissingField, "contactInfo.email is required")
	}

	for t, files := range sub.Files {
		if !t.Valid() {
			return nil, goerr.Wrap(ErrMalformedField, "unexpected file field", goerr.V("field", string(t)))
		}
		if len(files) > t.MaxCount() {
			return nil, goerr.Wrap(ErrTooManyFiles, fmt.Sprintf("at most %d file(s) accepted for %s", t.MaxCount(), t),
				goerr.V("field", string(t)), goerr.V("count", len(files)))
		}
	}
	return p, nil
}

func (s *kycService) Submit(ctx context.Context, sub Submission) (*SubmitResult, error) {
	p, err := parseSubmission(sub)
	if err != nil {
		return nil, err
	}
	logger := logging.From(ctx).With("component", "kyc", "investor_type", string(p.investorType))

	// The client going away must not abandon uploads halfway.
	ctx = context.WithoutCancel(ctx)

	docs, err := s.uploadAll(ctx, p.contact.Email, sub.Files)
	if err != nil {
		s.metrics.Submission(string(p.investorType), false)
		return nil, err
	}

	now := s.now().UTC()
	app := &model.Application{
		InvestorType:    p.investorType,
		ContactInfo:     p.contact,
		Declarations:    stampDeclarations(p.declarations, now),
		EDDScreening:    p.edd,
		InvestorDetails: p.details,
		Documents:       docs,
		Status:          model.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.investorType == model.InvestorInstitutional {
		app.BeneficialOwners = linkOwnerIDs(p.owners, docs)
		app.AuthorizedSignatories = linkSignatories(p.signatories, docs)
	}

	stored, err := s.repo.Create(ctx, app)
	if err != nil {
		s.metrics.Submission(string(p.investorType), false)
		return nil, goerr.Wrap(err, "failed to store KYC application", goerr.V("email", p.contact.Email))
	}
	s.metrics.Submission(string(p.investorType), true)
	logger = logger.With("application_id", stored.ID)
	logger.Info("kyc application stored", "documents", len(docs))

	if !s.notifier.SendApplicationEmails(ctx, stored) {
		logger.Warn("kyc confirmation emails not delivered")
	}

	if err := s.events.Publish(ctx, events.Event{
		Type:          events.TypeApplicationSubmitted,
		ApplicationID: stored.ID,
		Email:         stored.ContactInfo.Email,
		InvestorType:  string(stored.InvestorType),
		Status:        string(model.StatusPending),
		OccurredAt:    now,
	}); err != nil {
		logger.Error("publish submitted event failed", "error", err.Error())
	}

	return &SubmitResult{ApplicationID: stored.ID, Documents: docs}, nil
}

// uploadAll uploads every file concurrently and waits for all of them to
// settle. Multi valued fields keep the submitted order.
func (s *kycService) uploadAll(ctx context.Context, ownerKey string, files map[model.DocumentType][]model.UploadedFile) (model.Documents, error) {
	results := make(map[model.DocumentType][]model.DocumentReference, len(files))
	for t, fs := range files {
		if len(fs) > 0 {
			results[t] = make([]model.DocumentReference, len(fs))
		}
	}

	var g errgroup.Group
	for t, fs := range files {
		for i, f := range fs {
			g.Go(func() error {
				ref, err := s.docs.Upload(ctx, f, ownerKey, string(t), i)
				if err != nil {
					return err
				}
				results[t][i] = ref
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make(model.Documents, len(results))
	for t, refs := range results {
		if t.MultiValued() {
			docs[t] = refs
			continue
		}
		docs[t] = refs[len(refs)-1:]
	}
	return docs, nil
}

func stampDeclarations(in []model.Declaration, at time.Time) []model.Declaration {
	out := make([]model.Declaration, len(in))
	for i, d := range in {
		d.AcceptedAt = nil
		if d.Accepted {
			ts := at
			d.AcceptedAt = &ts
		}
		out[i] = d
	}
	return out
}

func linkOwnerIDs(owners []model.BeneficialOwner, docs model.Documents) []model.BeneficialOwner {
	ids := docs[model.DocBeneficialOwnerIDs]
	out := make([]model.BeneficialOwner, len(owners))
	for i, o := range owners {
		o.IDDocument = nil
		if i < len(ids) {
			ref := ids[i]
			o.IDDocument = &ref
		}
		out[i] = o
	}
	return out
}

func linkSignatories(signatories []model.AuthorizedSignatory, docs model.Documents) []model.AuthorizedSignatory {
	auth := docs.Single(model.DocAuthorizationDocument)
	out := make([]model.AuthorizedSignatory, len(signatories))
	for i, sg := range signatories {
		sg.AuthorizationDocument = auth
		out[i] = sg
	}
	return out
}

func (s *kycService) GetApplication(ctx context.Context, id string) (*model.Application, error) {
	if id == "" {
		return nil, goerr.Wrap(ErrMissingField, "id is required")
	}
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, goerr.Wrap(ErrApplicationNotFound, "application not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get application", goerr.V("id", id))
	}
	return app, nil
}

func (s *kycService) ListApplications(ctx context.Context, limit, offset int, status string) (*ApplicationListResult, error) {
	var f repository.ApplicationFilter
	if status != "" {
		st, err := model.ParseStatus(status)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidStatus, err.Error())
		}
		f.Status = st
	}

	res, err := s.repo.List(ctx, f, repository.NewPageQuery(limit, offset))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list applications")
	}
	return &ApplicationListResult{Items: res.Items, Total: res.Total}, nil
}
