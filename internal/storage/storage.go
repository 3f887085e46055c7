// Package storage keeps KYC documents in an S3-compatible bucket.
package storage

import (
	"context"
	"io"
)

// Object is a single upload. Size may be -1 when the length is not known.
type Object struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
	Tags        map[string]string
}

// Stored describes what the backend accepted.
type Stored struct {
	Key  string
	Size int64
	ETag string
}

// Storage is the subset of bucket operations the document store needs.
type Storage interface {
	Put(ctx context.Context, obj Object) (Stored, error)
	// PublicURL is computed locally; it never contacts the backend.
	PublicURL(key string) string
}
