package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
)

// RetryPolicy bounds how often a failed upload is repeated.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
	// Sleep waits between attempts. It returns early with ctx.Err() when ctx ends.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy retries three times with a fixed two second pause.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, Delay: 2 * time.Second, Sleep: sleepContext}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsTransient reports whether err is a network-level failure worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	switch minio.ToErrorResponse(err).Code {
	case "RequestTimeout", "SlowDown":
		return true
	}
	return false
}

// UploadError reports a document that could not be stored. Attempts counts
// every Put call; Retries counts the repeats after the first one.
type UploadError struct {
	FileName  string
	Attempts  int
	Retries   int
	Exhausted bool
	Err       error
}

// Error keeps the user-facing wording, which names the retry budget.
func (e *UploadError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("failed to upload %s after %d attempts. Please check your internet connection and try again.", e.FileName, e.Retries)
	}
	return fmt.Sprintf("failed to upload %s: %v", e.FileName, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
