// Package export uploads rendered goal dashboards to S3-compatible storage
// and hands out pre-signed download URLs. With no bucket configured the
// NoopUploader is used and every export reports ErrNotConfigured.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/engalejandrovargas/GoalsAI-sub002/internal/config"
)

// ErrNotConfigured is returned when dashboard export storage is not configured.
var ErrNotConfigured = errors.New("dashboard export not configured")

const contentType = "application/json"

// Uploader uploads dashboards and generates pre-signed download URLs.
type Uploader interface {
	// Upload stores the dashboard JSON for the given goal.
	Upload(ctx context.Context, goalID string, data []byte) error

	// PresignedURL returns a pre-signed URL for the goal's exported dashboard.
	PresignedURL(ctx context.Context, goalID string) (url string, expiry time.Time, err error)
}

// s3Client is the subset of minio.Client the uploader needs.
type s3Client interface {
	PutObject(ctx context.Context, bucket, objectName string, data []byte, contentType string) error
	PresignedGetObject(ctx context.Context, bucket, objectName string, expiry time.Duration) (*url.URL, error)
}

type minioClientWrapper struct {
	client *minio.Client
}

func (w *minioClientWrapper) PutObject(ctx context.Context, bucket, objectName string, data []byte, contentType string) error {
	_, err := w.client.PutObject(ctx, bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (w *minioClientWrapper) PresignedGetObject(ctx context.Context, bucket, objectName string, expiry time.Duration) (*url.URL, error) {
	return w.client.PresignedGetObject(ctx, bucket, objectName, expiry, nil)
}

// S3Uploader writes dashboards to an S3-compatible bucket.
type S3Uploader struct {
	client    s3Client
	bucket    string
	urlExpiry time.Duration
	now       func() time.Time
}

// Upload stores data under the goal's object key.
func (u *S3Uploader) Upload(ctx context.Context, goalID string, data []byte) error {
	key := ObjectKey(goalID)
	if err := u.client.PutObject(ctx, u.bucket, key, data, contentType); err != nil {
		return fmt.Errorf("upload dashboard to S3: %w", err)
	}
	slog.Info("export: dashboard uploaded",
		"goal_id", goalID,
		"bucket", u.bucket,
		"key", key,
		"size", humanize.Bytes(uint64(len(data))),
	)
	return nil
}

// PresignedURL returns a pre-signed GET URL for the goal's dashboard.
func (u *S3Uploader) PresignedURL(ctx context.Context, goalID string) (string, time.Time, error) {
	presigned, err := u.client.PresignedGetObject(ctx, u.bucket, ObjectKey(goalID), u.urlExpiry)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate pre-signed URL: %w", err)
	}
	return presigned.String(), u.now().Add(u.urlExpiry), nil
}

// NoopUploader is used when export storage is not configured.
type NoopUploader struct{}

// Upload returns ErrNotConfigured.
func (u *NoopUploader) Upload(ctx context.Context, goalID string, data []byte) error {
	return ErrNotConfigured
}

// PresignedURL returns ErrNotConfigured.
func (u *NoopUploader) PresignedURL(ctx context.Context, goalID string) (string, time.Time, error) {
	return "", time.Time{}, ErrNotConfigured
}

// NewUploader returns a NoopUploader when no bucket is configured and an
// S3Uploader otherwise.
func NewUploader(cfg config.ExportConfig) (Uploader, error) {
	if cfg.Bucket == "" {
		return &NoopUploader{}, nil
	}

	useSSL := true
	if cfg.UseSSL != nil {
		useSSL = *cfg.UseSSL
	}

	endpoint := stripScheme(cfg.Endpoint, &useSSL)
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create S3 client: %w", err)
	}

	return &S3Uploader{
		client:    &minioClientWrapper{client: client},
		bucket:    cfg.Bucket,
		urlExpiry: time.Duration(cfg.URLExpiry),
		now:       time.Now,
	}, nil
}

// ObjectKey returns the object key of a goal's exported dashboard.
func ObjectKey(goalID string) string {
	return "goals/" + goalID + "/dashboard.json"
}

// stripScheme removes an http:// or https:// prefix from endpoint. An
// explicit scheme decides useSSL.
func stripScheme(endpoint string, useSSL *bool) string {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		*useSSL = true
		return strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		*useSSL = false
		return strings.TrimPrefix(endpoint, "http://")
	}
	return endpoint
}
