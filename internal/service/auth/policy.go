// Package auth holds the access policy for document and comment mutations.
// Every check is a pure function of the resource and the caller.
package auth

import (
	"fmt"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/models/docsystem"
)

// CanMutateDocument reports whether caller may revise or delete doc.
// The creator and admins may; a document without a creator is admin-only.
func CanMutateDocument(doc *docsystem.Document, caller *models.Caller) bool {
	if doc == nil || caller == nil {
		return false
	}
	return caller.IsAdmin() || doc.IsCreator(caller.UserID)
}

// CanMutateComment reports whether caller may edit or remove comment.
// Only the author may; admins get no override and authorless comments are immutable.
func CanMutateComment(comment *docsystem.Comment, caller *models.Caller) bool {
	if comment == nil || caller == nil {
		return false
	}
	return comment.IsAuthor(caller.UserID)
}

// RequireCaller fails with domain.ErrUnauthorized when no identity is present
func RequireCaller(caller *models.Caller) error {
	if caller == nil || caller.UserID == "" {
		return &domain.UnauthorizedError{Message: domain.ErrUnauthorized.Error()}
	}
	return nil
}

// AuthorizeDocument returns a ForbiddenError naming the action when the policy denies it
func AuthorizeDocument(doc *docsystem.Document, caller *models.Caller, action string) error {
	if CanMutateDocument(doc, caller) {
		return nil
	}
	return &domain.ForbiddenError{
		Message: fmt.Sprintf("only the document's creator or an admin can %s it", action),
	}
}

// AuthorizeComment returns a ForbiddenError naming the action when the policy denies it
func AuthorizeComment(comment *docsystem.Comment, caller *models.Caller, action string) error {
	if CanMutateComment(comment, caller) {
		return nil
	}
	return &domain.ForbiddenError{
		Message: fmt.Sprintf("only the comment's author can %s it", action),
	}
}
