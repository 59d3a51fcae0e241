package docsystem

import (
	"context"

	"inkwell/internal/domain/models/docsystem"
)

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// Create inserts a document and fills in its ID and timestamps
	Create(ctx context.Context, doc *docsystem.Document) error

	// GetByID retrieves a document by ID without locking
	GetByID(ctx context.Context, id string) (*docsystem.Document, error)

	// GetForUpdate retrieves a document and takes a row-level write lock on it.
	// Must be called inside a transaction; the lock is released on commit or rollback.
	GetForUpdate(ctx context.Context, id string) (*docsystem.Document, error)

	// Update persists the current version pointer, workspace and updated_at
	Update(ctx context.Context, doc *docsystem.Document) error

	// Delete removes a document; versions, attachments and comments cascade
	Delete(ctx context.Context, id string) error

	// ListSummaries lists documents with their current title and an excerpt, newest first.
	// A nil workspaceID lists every workspace.
	ListSummaries(ctx context.Context, workspaceID *string, excerptLength int) ([]docsystem.DocumentSummary, error)
}
