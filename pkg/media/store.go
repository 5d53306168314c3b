package media

import (
	"context"
	"io"
)

// Store persists uploaded recipe media and hands back the reference stored on
// the recipe row (a filename for disk, a public URL for GCS).
type Store interface {
	// Save writes the upload and returns its stored reference. The original
	// filename is only used for its extension.
	Save(ctx context.Context, r io.Reader, originalName, contentType string) (string, error)
	// Remove deletes a previously stored reference. Missing objects are not
	// an error; removal is best-effort.
	Remove(ctx context.Context, ref string) error
}
