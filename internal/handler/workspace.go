package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "inkwell/internal/domain/services/docsystem"
	"inkwell/internal/httputil"
)

// WorkspaceHandler handles workspace HTTP requests
type WorkspaceHandler struct {
	workspaceService docsysSvc.WorkspaceService
	logger           *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService docsysSvc.WorkspaceService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		logger:           logger,
	}
}

// ListWorkspaces lists all workspaces
// GET /api/workspaces
func (h *WorkspaceHandler) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	workspaces, err := h.workspaceService.ListWorkspaces(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	out := make([]workspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		out = append(out, toWorkspace(&workspaces[i]))
	}
	httputil.RespondJSON(w, http.StatusOK, out)
}
