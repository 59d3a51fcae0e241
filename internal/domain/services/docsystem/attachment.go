package docsystem

import (
	"context"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/models/docsystem"
)

// AttachmentService binds uploaded files to document versions
type AttachmentService interface {
	// Attach stores a file on the version that is current at upload time
	Attach(ctx context.Context, caller *models.Caller, documentID string, file *docsystem.UploadedFile) (*docsystem.Attachment, error)

	// Detach deletes an attachment that belongs to the document
	Detach(ctx context.Context, caller *models.Caller, documentID, attachmentID string) error

	// CurrentAttachments lists attachments bound to the document's current version
	CurrentAttachments(ctx context.Context, documentID string) ([]docsystem.Attachment, error)

	// GetAttachment returns an attachment with its payload
	GetAttachment(ctx context.Context, documentID, attachmentID string) (*docsystem.Attachment, error)
}
