package docsystem

import (
	"context"

	"inkwell/internal/domain/models/docsystem"
)

// WorkspaceService exposes the workspace operations the service needs to run
type WorkspaceService interface {
	ListWorkspaces(ctx context.Context) ([]docsystem.Workspace, error)
	CreateWorkspace(ctx context.Context, req *CreateWorkspaceRequest) (*docsystem.Workspace, error)
}

// CreateWorkspaceRequest represents a workspace creation request
type CreateWorkspaceRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"` // Derived from Name when empty
	Description *string `json:"description,omitempty"`
}
