package docsystem

import (
	"context"
	"log/slog"

	"inkwell/internal/domain/models"
	docmodels "inkwell/internal/domain/models/docsystem"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
	docsysSvc "inkwell/internal/domain/services/docsystem"
	"inkwell/internal/service/auth"
)

// commentService implements the CommentService interface
type commentService struct {
	docRepo     docsysRepo.DocumentRepository
	commentRepo docsysRepo.CommentRepository
	logger      *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	docRepo docsysRepo.DocumentRepository,
	commentRepo docsysRepo.CommentRepository,
	logger *slog.Logger,
) docsysSvc.CommentService {
	return &commentService{
		docRepo:     docRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// ListComments lists a document's comments, newest first
func (s *commentService) ListComments(ctx context.Context, documentID string) ([]docmodels.Comment, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByDocument(ctx, documentID)
}

// AddComment writes a comment as the caller, in the document's current workspace
func (s *commentService) AddComment(ctx context.Context, caller *models.Caller, documentID string, req *docsysSvc.CommentRequest) (*docmodels.Comment, error) {
	if err := auth.RequireCaller(caller); err != nil {
		return nil, err
	}

	body, err := validateComment(req.Body)
	if err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	authorID := caller.UserID
	comment := &docmodels.Comment{
		DocumentID:  doc.ID,
		WorkspaceID: doc.WorkspaceID,
		AuthorID:    &authorID,
		Author:      caller.Email,
		Body:        body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Debug("comment added", "document_id", doc.ID, "comment_id", comment.ID)
	return comment, nil
}

// EditComment replaces the body of the caller's own comment. A nil body keeps the text.
func (s *commentService) EditComment(ctx context.Context, caller *models.Caller, documentID, commentID string, req *docsysSvc.EditCommentRequest) (*docmodels.Comment, error) {
	if err := auth.RequireCaller(caller); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetForDocument(ctx, documentID, commentID)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeComment(comment, caller, "edit"); err != nil {
		return nil, err
	}

	if req.Body == nil {
		return comment, nil
	}

	body, err := validateComment(*req.Body)
	if err != nil {
		return nil, err
	}

	comment.Body = body
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Debug("comment edited", "document_id", documentID, "comment_id", commentID)
	return comment, nil
}

// RemoveComment hard-deletes the caller's own comment
func (s *commentService) RemoveComment(ctx context.Context, caller *models.Caller, documentID, commentID string) error {
	if err := auth.RequireCaller(caller); err != nil {
		return err
	}

	comment, err := s.commentRepo.GetForDocument(ctx, documentID, commentID)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeComment(comment, caller, "delete"); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(ctx, documentID, commentID); err != nil {
		return err
	}

	s.logger.Debug("comment removed", "document_id", documentID, "comment_id", commentID)
	return nil
}
