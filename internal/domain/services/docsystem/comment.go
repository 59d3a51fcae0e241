package docsystem

import (
	"context"

	"inkwell/internal/domain/models"
	"inkwell/internal/domain/models/docsystem"
)

// CommentService manages remarks on documents. Only a comment's author may change it.
type CommentService interface {
	ListComments(ctx context.Context, documentID string) ([]docsystem.Comment, error)
	AddComment(ctx context.Context, caller *models.Caller, documentID string, req *CommentRequest) (*docsystem.Comment, error)
	EditComment(ctx context.Context, caller *models.Caller, documentID, commentID string, req *EditCommentRequest) (*docsystem.Comment, error)
	RemoveComment(ctx context.Context, caller *models.Caller, documentID, commentID string) error
}

// CommentRequest represents a new comment
type CommentRequest struct {
	Body string `json:"body"`
}

// EditCommentRequest represents a comment edit; a nil Body keeps the existing text
type EditCommentRequest struct {
	Body *string `json:"body,omitempty"`
}
