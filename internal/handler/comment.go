package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "inkwell/internal/domain/services/docsystem"
	"inkwell/internal/httputil"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	commentService docsysSvc.CommentService
	logger         *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService docsysSvc.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// ListComments lists a document's comments, newest first
// GET /api/documents/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListComments(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toComments(comments))
}

// AddComment adds a comment authored by the caller
// POST /api/documents/{id}/comments
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.commentService.AddComment(r.Context(), httputil.GetCaller(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, toComment(comment))
}

// EditComment changes a comment's body
// PUT /api/documents/{id}/comments/{commentId}
func (h *CommentHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.EditCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.commentService.EditComment(r.Context(), httputil.GetCaller(r), r.PathValue("id"), r.PathValue("commentId"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toComment(comment))
}

// RemoveComment deletes a comment
// DELETE /api/documents/{id}/comments/{commentId}
func (h *CommentHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	commentID := r.PathValue("commentId")
	if err := h.commentService.RemoveComment(r.Context(), httputil.GetCaller(r), r.PathValue("id"), commentID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, deletedResponse{DeletedID: commentID})
}
