package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "inkwell/internal/domain/services/docsystem"
	"inkwell/internal/httputil"
)

// DocumentHandler handles document and version HTTP requests
type DocumentHandler struct {
	docService docsysSvc.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService docsysSvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// ListDocuments lists document summaries
// GET /api/documents?workspace_id=
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	var workspaceID *string
	if id := r.URL.Query().Get("workspace_id"); id != "" {
		workspaceID = &id
	}

	summaries, err := h.docService.ListDocuments(r.Context(), workspaceID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	out := make([]documentSummaryResponse, 0, len(summaries))
	for i := range summaries {
		out = append(out, toDocumentSummary(&summaries[i]))
	}
	httputil.RespondJSON(w, http.StatusOK, out)
}

// CreateDocument creates a document with its first version
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, version, err := h.docService.CreateDocument(r.Context(), httputil.GetCaller(r), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, toDocument(doc, version))
}

// GetDocument returns the document page
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	view, err := h.docService.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toDocumentDetail(view))
}

// ReviseDocument appends a new version
// PUT /api/documents/{id}
func (h *DocumentHandler) ReviseDocument(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.ReviseDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, version, err := h.docService.ReviseDocument(r.Context(), httputil.GetCaller(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toDocument(doc, version))
}

// DeleteDocument deletes a document and everything attached to it
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.docService.DeleteDocument(r.Context(), httputil.GetCaller(r), id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, deletedResponse{DeletedID: id})
}

// ListVersions returns the version history, newest first
// GET /api/documents/{id}/versions
func (h *DocumentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := h.docService.ListVersions(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	out := make([]versionResponse, 0, len(versions))
	for i := range versions {
		out = append(out, toVersion(&versions[i]))
	}
	httputil.RespondJSON(w, http.StatusOK, out)
}

// GetVersion returns one version snapshot
// GET /api/documents/{id}/versions/{number}
func (h *DocumentHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	number, err := parseVersionNumber(r.PathValue("number"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	snapshot, err := h.docService.GetVersion(r.Context(), r.PathValue("id"), number)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, toVersionSnapshot(snapshot))
}
