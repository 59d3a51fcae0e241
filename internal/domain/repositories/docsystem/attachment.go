package docsystem

import (
	"context"

	"inkwell/internal/domain/models/docsystem"
)

// AttachmentRepository defines data access operations for attachments
type AttachmentRepository interface {
	// Create inserts an attachment including its payload
	Create(ctx context.Context, a *docsystem.Attachment) error

	// GetForDocument retrieves an attachment with its payload, scoped to a document
	GetForDocument(ctx context.Context, documentID, id string) (*docsystem.Attachment, error)

	// ListByVersion lists attachment metadata (no payloads) bound to a version
	ListByVersion(ctx context.Context, versionID string) ([]docsystem.Attachment, error)

	// Delete removes an attachment scoped to a document
	Delete(ctx context.Context, documentID, id string) error
}
