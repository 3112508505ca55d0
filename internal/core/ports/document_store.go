package ports

import (
	"context"

	"github.com/smartaviation/site/internal/core/domain"
)

// DocumentStore persists the single site document.
type DocumentStore interface {
	// Read loads and parses the whole document. A missing or malformed
	// file is reported as domain.ErrStorage.
	Read(ctx context.Context) (*domain.Document, error)

	// Write replaces the whole document.
	Write(ctx context.Context, doc *domain.Document) error

	// Update runs read → fn → write as one unit. When fn returns an error
	// nothing is written and that error is returned unchanged.
	Update(ctx context.Context, fn func(doc *domain.Document) error) error
}
