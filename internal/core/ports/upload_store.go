package ports

import "context"

// UploadStore keeps user-uploaded images on disk.
type UploadStore interface {
	// Check reports domain.ErrInvalidImage when data is not an image.
	Check(data []byte) error

	// Save stores data under a generated name that keeps originalName's
	// extension and returns the public path (e.g. /uploads/<name>.png).
	Save(ctx context.Context, data []byte, originalName string) (string, error)
}
