package docsystem

import (
	"context"

	"inkwell/internal/domain/models/docsystem"
)

// VersionRepository defines data access operations for the append-only version chain.
// There is deliberately no Update: versions are immutable.
type VersionRepository interface {
	// Create inserts a version; (document_id, version_number) must be unused
	Create(ctx context.Context, v *docsystem.Version) error

	// GetByNumber retrieves a document's version by number
	GetByNumber(ctx context.Context, documentID string, number int) (*docsystem.Version, error)

	// GetByID retrieves a version by ID
	GetByID(ctx context.Context, id string) (*docsystem.Version, error)

	// ListByDocument lists version metadata (no bodies), newest first
	ListByDocument(ctx context.Context, documentID string) ([]docsystem.Version, error)
}
