package docsystem

import (
	"context"

	"inkwell/internal/domain/models/docsystem"
)

// WorkspaceRepository defines the workspace lookups the document core needs
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *docsystem.Workspace) error
	GetByID(ctx context.Context, id string) (*docsystem.Workspace, error)
	GetBySlug(ctx context.Context, slug string) (*docsystem.Workspace, error)
	List(ctx context.Context) ([]docsystem.Workspace, error)
}
