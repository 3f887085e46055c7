package storage

import (
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"kycapi/internal/logging"
	"kycapi/internal/metrics"
	"kycapi/internal/model"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9\-_.]`)

// SanitizeName replaces every character outside [A-Za-z0-9-_.] with an underscore.
func SanitizeName(s string) string {
	return unsafeNameChars.ReplaceAllString(s, "_")
}

// FileExtension is the lower-cased text after the last dot of name, or "".
func FileExtension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// DocumentStore uploads KYC documents under a per-applicant folder.
type DocumentStore struct {
	store   Storage
	retry   RetryPolicy
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a DocumentStore.
type Option func(*DocumentStore)

func WithRetryPolicy(p RetryPolicy) Option {
	return func(d *DocumentStore) {
		if p.Sleep == nil {
			p.Sleep = sleepContext
		}
		d.retry = p
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *DocumentStore) { d.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(d *DocumentStore) { d.now = now }
}

// NewDocumentStore wraps store with the default retry policy.
func NewDocumentStore(store Storage, opts ...Option) *DocumentStore {
	d := &DocumentStore{store: store, retry: DefaultRetryPolicy(), now: time.Now}
	for _, o := range opts {
		o(d)
	}
	return d
}

var separators = strings.NewReplacer("/", "_", `\`, "_")

// OwnerFolder turns ownerKey into a single path segment. Separators become
// underscores and dot-only names are replaced, so keys never leave the folder.
func OwnerFolder(ownerKey string) string {
	folder := separators.Replace(ownerKey)
	if strings.Trim(folder, ".") == "" {
		return strings.Repeat("_", max(len(folder), 1))
	}
	return folder
}

// ObjectPath builds {ownerFolder}/{field}_{unixMillis}[_{index}].{ext}.
func ObjectPath(ownerKey, fieldName, fileName string, index int, at time.Time) string {
	name := SanitizeName(fieldName) + "_" + strconv.FormatInt(at.UnixMilli(), 10)
	if index > 0 {
		name += "_" + strconv.Itoa(index)
	}
	name += "." + FileExtension(fileName)
	return OwnerFolder(ownerKey) + "/" + name
}

// Upload stores file and returns a reference to it. Transient failures are
// retried per the policy; everything else fails on the first attempt.
func (d *DocumentStore) Upload(ctx context.Context, file model.UploadedFile, ownerKey, fieldName string, index int) (model.DocumentReference, error) {
	logger := logging.From(ctx)
	key := ObjectPath(ownerKey, fieldName, file.Filename, index, d.now())

	for attempt := 0; ; attempt++ {
		_, err := d.store.Put(ctx, Object{
			Key:         key,
			Body:        bytes.NewReader(file.Content),
			Size:        file.Size(),
			ContentType: file.ContentType,
			Tags:        map[string]string{"document-type": fieldName},
		})
		if err == nil {
			d.metrics.Upload(fieldName, true)
			return model.DocumentReference{
				StoragePath:  key,
				URL:          d.store.PublicURL(key),
				FileName:     file.Filename,
				DocumentType: model.DocumentType(fieldName),
				MimeType:     file.ContentType,
				FileSize:     file.Size(),
				UploadedAt:   d.now().UTC(),
			}, nil
		}

		logger.Error("document upload failed",
			"component", "storage",
			"file_name", file.Filename,
			"document_type", fieldName,
			"attempt", attempt+1,
			"error", err.Error(),
		)

		if !IsTransient(err) {
			d.metrics.Upload(fieldName, false)
			return model.DocumentReference{}, &UploadError{FileName: file.Filename, Attempts: attempt + 1, Retries: attempt, Err: err}
		}
		if attempt >= d.retry.MaxRetries {
			d.metrics.Upload(fieldName, false)
			return model.DocumentReference{}, &UploadError{FileName: file.Filename, Attempts: attempt + 1, Retries: attempt, Exhausted: true, Err: err}
		}

		logger.Info("retrying document upload",
			"component", "storage",
			"file_name", file.Filename,
			"retry", attempt+1,
			"max_retries", d.retry.MaxRetries,
		)
		d.metrics.UploadRetry()
		if err := d.retry.Sleep(ctx, d.retry.Delay); err != nil {
			return model.DocumentReference{}, &UploadError{FileName: file.Filename, Attempts: attempt + 1, Retries: attempt, Err: err}
		}
	}
}

// URL resolves the public URL of a stored document.
func (d *DocumentStore) URL(storagePath string) string {
	return d.store.PublicURL(storagePath)
}
