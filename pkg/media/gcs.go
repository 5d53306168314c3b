package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSStore uploads media to a Google Cloud Storage bucket and stores the
// public object URL on the recipe row.
type GCSStore struct {
	Client *storage.Client
	Bucket string
}

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket}
}

func (s *GCSStore) Save(ctx context.Context, r io.Reader, originalName, contentType string) (string, error) {
	object := "media/" + uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	wc := s.Client.Bucket(s.Bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return publicURL(s.Bucket, object), nil
}

func (s *GCSStore) Remove(ctx context.Context, ref string) error {
	prefix := publicURL(s.Bucket, "")
	if !strings.HasPrefix(ref, prefix) {
		return nil
	}
	object := strings.TrimPrefix(ref, prefix)
	err := s.Client.Bucket(s.Bucket).Object(object).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	return err
}

// publicURL builds a public URL for an object (assuming public read access)
func publicURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}

var _ Store = (*GCSStore)(nil)
