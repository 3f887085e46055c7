package notification

import (
	"context"

	"golang.org/x/sync/errgroup"

	"kycapi/internal/logging"
	"kycapi/internal/mail"
	"kycapi/internal/metrics"
	"kycapi/internal/model"
)

// Notifier sends the workflow emails. Delivery failures are logged and
// reported as false; they are never returned as errors.
type Notifier struct {
	sender     mail.Sender
	adminEmail string
	baseURL    string
	resolveURL func(string) string
	metrics    *metrics.Metrics
}

// NewNotifier creates a Notifier. resolveURL may be nil, in which case the
// URL stored on each document reference is used.
func NewNotifier(sender mail.Sender, adminEmail, baseURL string, resolveURL func(string) string, m *metrics.Metrics) *Notifier {
	return &Notifier{
		sender:     sender,
		adminEmail: adminEmail,
		baseURL:    baseURL,
		resolveURL: resolveURL,
		metrics:    m,
	}
}

// SendApplicationEmails sends the admin notification and the applicant
// confirmation concurrently. It returns false if either could not be sent.
func (n *Notifier) SendApplicationEmails(ctx context.Context, app *model.Application) bool {
	logger := logging.From(ctx).With("component", "notification", "application_id", app.ID)
	view := NewApplicationView(app, n.resolveURL, n.baseURL)

	adminHTML, err := RenderApplicationEmail(view, true)
	if err != nil {
		logger.Error("render admin email failed", "error", err.Error())
		return false
	}
	applicantHTML, err := RenderApplicationEmail(view, false)
	if err != nil {
		logger.Error("render applicant email failed", "error", err.Error())
		return false
	}

	messages := []struct {
		kind string
		msg  mail.Message
	}{
		{"admin", mail.Message{
			To:      []string{n.adminEmail},
			Subject: "New KYC Application Submission - " + app.ID,
			HTML:    adminHTML,
		}},
		{"applicant", mail.Message{
			To:      []string{app.ContactInfo.Email},
			Subject: "KYC Application Submission Confirmation",
			HTML:    applicantHTML,
		}},
	}

	var g errgroup.Group
	for _, m := range messages {
		g.Go(func() error {
			err := n.sender.Send(ctx, m.msg)
			n.metrics.Notification(m.kind, err == nil)
			if err != nil {
				logger.Error("sending email failed", "kind", m.kind, "error", err.Error())
			}
			return err
		})
	}
	return g.Wait() == nil
}

// SendNDA emails the NDA request for investorType to the admin.
func (n *Notifier) SendNDA(ctx context.Context, investorType string, data map[string]any) bool {
	logger := logging.From(ctx).With("component", "notification", "investor_type", investorType)

	view, err := NewNDAView(investorType, data, n.baseURL)
	if err != nil {
		logger.Error("build nda email failed", "error", err.Error())
		return false
	}
	html, err := RenderNDAEmail(view)
	if err != nil {
		logger.Error("render nda email failed", "error", err.Error())
		return false
	}

	err = n.sender.Send(ctx, mail.Message{
		To:      []string{n.adminEmail},
		Subject: "New NDA Request - " + investorType + " Investor",
		HTML:    html,
	})
	n.metrics.Notification("nda", err == nil)
	if err != nil {
		logger.Error("sending nda email failed", "error", err.Error())
		return false
	}
	return true
}
