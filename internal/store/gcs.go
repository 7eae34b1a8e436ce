package store

import (
	"context"
	"path"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const gcsTimeout = 30 * time.Second

// GCSStore is a Cloud Storage-backed implementation of Store.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
	mu     sync.Mutex
}

// NewGCS creates a new GCSStore writing objects under prefix in bucket.
// credentialsFile may be empty to use application default credentials.
func NewGCS(ctx context.Context, bucket, prefix, credentialsFile string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCSStore{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// Set uploads value as the named object, replacing any previous version.
func (s *GCSStore) Set(ctx context.Context, name string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, gcsTimeout)
	defer cancel()

	writer := s.client.Bucket(s.bucket).Object(s.objectName(name)).NewWriter(ctx)
	writer.ContentType = ContentType(name)

	if _, err := writer.Write(value); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}

// Location returns the gs:// URL of the named object.
func (s *GCSStore) Location(name string) string {
	return "gs://" + s.bucket + "/" + s.objectName(name)
}

// Close closes the GCS client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

func (s *GCSStore) objectName(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// ContentType returns the MIME type used when uploading a file named name.
func ContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".json":
		return "application/json; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
