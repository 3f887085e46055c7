package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"kycapi/internal/config"
)

const bucketCheckTimeout = 10 * time.Second

type bucket struct {
	client *minio.Client
	name   string
	base   string
}

// NewMinIO connects to the configured endpoint and creates the document
// bucket on first use.
func NewMinIO(ctx context.Context, cfg config.MinIOConfig) (Storage, error) {
	switch {
	case cfg.Endpoint == "":
		return nil, errors.New("minio endpoint is required")
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return nil, errors.New("minio credentials are required")
	case cfg.Bucket == "":
		return nil, errors.New("minio bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	b := &bucket{client: client, name: cfg.Bucket, base: cfg.PublicBaseURL}
	if b.base == "" {
		b.base = client.EndpointURL().String()
	}

	if err := b.ensure(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *bucket) ensure(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()

	ok, err := b.client.BucketExists(ctx, b.name)
	if err != nil {
		return fmt.Errorf("lookup bucket %q: %w", b.name, err)
	}
	if ok {
		return nil
	}
	if err := b.client.MakeBucket(ctx, b.name, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %q: %w", b.name, err)
	}
	return nil
}

func (b *bucket) Put(ctx context.Context, obj Object) (Stored, error) {
	info, err := b.client.PutObject(ctx, b.name, obj.Key, obj.Body, obj.Size, minio.PutObjectOptions{
		ContentType:  obj.ContentType,
		UserMetadata: obj.Tags,
	})
	if err != nil {
		return Stored{}, err
	}
	return Stored{Key: info.Key, Size: info.Size, ETag: info.ETag}, nil
}

func (b *bucket) PublicURL(key string) string {
	return joinPublicURL(b.base, b.name, key)
}

// joinPublicURL escapes each path segment of key but keeps the slashes.
func joinPublicURL(base, bucketName, key string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(base, "/"))
	sb.WriteByte('/')
	sb.WriteString(url.PathEscape(bucketName))
	for _, seg := range strings.Split(key, "/") {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(seg))
	}
	return sb.String()
}
