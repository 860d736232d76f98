package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// PhotoStore uploads attendance photos to a GCS bucket and returns
// public object URLs. The rest of the application treats those URLs
// as opaque references and never reads the photo content back.
type PhotoStore struct {
	client *storage.Client
	bucket string
}

// NewPhotoStore creates a photo store backed by GCS.
// If credsFile is empty, Application Default Credentials are used.
func NewPhotoStore(ctx context.Context, bucket, credsFile string) (*PhotoStore, error) {
	var client *storage.Client
	var err error

	if credsFile == "" {
		client, err = storage.NewClient(ctx)
	} else {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credsFile))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &PhotoStore{client: client, bucket: bucket}, nil
}

// Upload writes the photo into the bucket and returns its public URL
func (s *PhotoStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	wc := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // photos are small, skip chunked upload

	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}

	return s.publicURL(objectPath), nil
}

// Close releases the underlying client
func (s *PhotoStore) Close() error {
	return s.client.Close()
}

func (s *PhotoStore) publicURL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectPath)
}
