package docsystem

import (
	"context"

	"inkwell/internal/domain/models/docsystem"
)

// CommentRepository defines data access operations for comments
type CommentRepository interface {
	Create(ctx context.Context, c *docsystem.Comment) error

	// GetForDocument retrieves a comment scoped to a document
	GetForDocument(ctx context.Context, documentID, id string) (*docsystem.Comment, error)

	// Update persists a new body and updated_at
	Update(ctx context.Context, c *docsystem.Comment) error

	// Delete hard-deletes a comment scoped to a document
	Delete(ctx context.Context, documentID, id string) error

	// ListByDocument lists a document's comments, newest first
	ListByDocument(ctx context.Context, documentID string) ([]docsystem.Comment, error)
}
