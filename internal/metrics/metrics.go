package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the domain counters of the KYC workflow.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	submissions       *prometheus.CounterVec
	uploads           *prometheus.CounterVec
	uploadRetries     prometheus.Counter
	notifications     *prometheus.CounterVec
	statusTransitions *prometheus.CounterVec
	chatRequests      *prometheus.CounterVec
}

// New creates the domain counters and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_submissions_total",
				Help: "KYC applications received, by investor type and outcome.",
			},
			[]string{"investor_type", "outcome"},
		),
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_document_uploads_total",
				Help: "Document uploads, by document type and outcome.",
			},
			[]string{"document_type", "outcome"},
		),
		uploadRetries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "kyc_document_upload_retries_total",
				Help: "Upload attempts repeated after a transient storage failure.",
			},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_notifications_total",
				Help: "Emails dispatched, by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		statusTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_status_transitions_total",
				Help: "Application status changes, by previous and new status.",
			},
			[]string{"from", "to"},
		),
		chatRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "knowledge_chat_requests_total",
				Help: "Chat requests, by retrieval mode.",
			},
			[]string{"retrieval"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.submissions, m.uploads, m.uploadRetries, m.notifications, m.statusTransitions, m.chatRequests,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

func (m *Metrics) Submission(investorType string, ok bool) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(investorType, outcome(ok)).Inc()
}

func (m *Metrics) Upload(documentType string, ok bool) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(documentType, outcome(ok)).Inc()
}

func (m *Metrics) UploadRetry() {
	if m == nil {
		return
	}
	m.uploadRetries.Inc()
}

func (m *Metrics) Notification(kind string, ok bool) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind, outcome(ok)).Inc()
}

func (m *Metrics) StatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

// ChatRetrieval records whether a chat used vector or keyword retrieval.
func (m *Metrics) ChatRetrieval(mode string) {
	if m == nil {
		return
	}
	m.chatRequests.WithLabelValues(mode).Inc()
}
