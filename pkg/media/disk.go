package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore keeps uploads in a local directory served as static files
// under /uploads. Files are renamed to a uuid plus the original extension
// so references never collide.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{Dir: dir}, nil
}

func (s *DiskStore) Save(_ context.Context, r io.Reader, originalName, _ string) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	f, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}

func (s *DiskStore) Remove(_ context.Context, ref string) error {
	// Refuse anything that escapes the uploads dir.
	if ref == "" || ref != filepath.Base(ref) {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, ref))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ Store = (*DiskStore)(nil)
