package docsystem

import (
	"context"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/models/docsystem"
)

// DocumentService owns the version chain of every document
type DocumentService interface {
	// CreateDocument creates a document together with its version 1
	CreateDocument(ctx context.Context, caller *models.Caller, req *CreateDocumentRequest) (*docsystem.Document, *docsystem.Version, error)

	// ReviseDocument appends a new version and advances the current version pointer.
	// Concurrent revisions of one document are serialized and numbered in commit order.
	ReviseDocument(ctx context.Context, caller *models.Caller, documentID string, req *ReviseDocumentRequest) (*docsystem.Document, *docsystem.Version, error)

	// DeleteDocument deletes a document with all its versions, attachments and comments
	DeleteDocument(ctx context.Context, caller *models.Caller, documentID string) error

	// GetDocument returns the document page: current version, history, attachments, comments
	GetDocument(ctx context.Context, documentID string) (*docsystem.DocumentView, error)

	// GetVersion returns one version with its attachments and whether it is the latest
	GetVersion(ctx context.Context, documentID string, versionNumber int) (*docsystem.VersionSnapshot, error)

	// ListVersions returns version metadata, newest first
	ListVersions(ctx context.Context, documentID string) ([]docsystem.Version, error)

	// ListDocuments lists document summaries, optionally filtered by workspace
	ListDocuments(ctx context.Context, workspaceID *string) ([]docsystem.DocumentSummary, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Author      string `json:"author,omitempty"` // Display label; defaults to "Anonymous"
}

// ReviseDocumentRequest represents a document edit. Title and body are always
// required: every edit produces a complete new version.
type ReviseDocumentRequest struct {
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	Author      string  `json:"author,omitempty"`       // Empty inherits the current version's author
	WorkspaceID *string `json:"workspace_id,omitempty"` // Move the document to another workspace
}
