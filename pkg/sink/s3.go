package sink

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the slice of the S3 client the target needs.
// *s3.Client satisfies it; tests supply a stub.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Target publishes the rendered value to a fixed S3 object on every
// change. Text content becomes the object body; attributes and properties
// become object metadata. Useful for status-page style surfaces where the
// display is a static object behind a CDN.
//
// Publishing happens synchronously inside the propagation path. Upload
// failures are logged and retained for LastError; they never interrupt
// propagation.
type S3Target struct {
	client      PutObjectAPI
	bucket      string
	key         string
	contentType string
	timeout     time.Duration
	logger      *slog.Logger

	mu      sync.Mutex
	content string
	meta    map[string]string
	lastErr error
}

// NewS3Target creates a target publishing to s3://bucket/key.
func NewS3Target(client PutObjectAPI, bucket, key string) *S3Target {
	return &S3Target{
		client:      client,
		bucket:      bucket,
		key:         key,
		contentType: "text/plain; charset=utf-8",
		timeout:     10 * time.Second,
		logger:      slog.Default(),
		meta:        make(map[string]string),
	}
}

// WithContentType sets the published object's content type.
func (t *S3Target) WithContentType(ct string) *S3Target {
	t.contentType = ct
	return t
}

// WithTimeout sets the per-publish timeout.
func (t *S3Target) WithTimeout(d time.Duration) *S3Target {
	t.timeout = d
	return t
}

// WithLogger sets the logger for publish failures.
func (t *S3Target) WithLogger(logger *slog.Logger) *S3Target {
	if logger != nil {
		t.logger = logger
	}
	return t
}

func (t *S3Target) SetText(value string) {
	t.mu.Lock()
	t.content = value
	t.mu.Unlock()
	t.publish()
}

func (t *S3Target) SetAttr(name, value string) {
	t.mu.Lock()
	t.meta[name] = value
	t.mu.Unlock()
	t.publish()
}

func (t *S3Target) SetProp(name string, value any) {
	t.SetAttr(name, stringify(value))
}

// LastError returns the most recent publish failure, if any.
func (t *S3Target) LastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// publish uploads the current content and metadata.
func (t *S3Target) publish() {
	t.mu.Lock()
	body := t.content
	meta := make(map[string]string, len(t.meta))
	for k, v := range t.meta {
		meta[k] = v
	}
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	_, err := t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(t.bucket),
		Key:         aws.String(t.key),
		Body:        strings.NewReader(body),
		ContentType: aws.String(t.contentType),
		Metadata:    meta,
	})

	t.mu.Lock()
	t.lastErr = err
	t.mu.Unlock()

	if err != nil {
		t.logger.Error("s3 sink publish failed",
			"bucket", t.bucket,
			"key", t.key,
			"error", err)
	}
}
