package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models/docsystem"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
)

type workspaceRepository struct {
	s *Store
}

// NewWorkspaceRepository creates a workspace repository backed by the store
func NewWorkspaceRepository(store *Store) docsysRepo.WorkspaceRepository {
	return &workspaceRepository{s: store}
}

func (r *workspaceRepository) Create(ctx context.Context, ws *docsystem.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.workspaces {
		if existing.Slug == ws.Slug {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("workspace slug '%s' already exists", ws.Slug),
				ResourceType: "workspace",
				ResourceID:   existing.ID,
			}
		}
	}

	now := time.Now().UTC()
	ws.ID = uuid.NewString()
	ws.CreatedAt = now
	ws.UpdatedAt = now

	row := *ws
	row.Description = cloneString(ws.Description)
	r.s.workspaces[row.ID] = &row
	r.s.record(ctx, func() { delete(r.s.workspaces, row.ID) })
	return nil
}

func (r *workspaceRepository) GetByID(_ context.Context, id string) (*docsystem.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ws, ok := r.s.workspaces[id]
	if !ok {
		return nil, fmt.Errorf("workspace %s: %w", id, domain.ErrNotFound)
	}
	c := *ws
	return &c, nil
}

func (r *workspaceRepository) GetBySlug(_ context.Context, slug string) (*docsystem.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ws := range r.s.workspaces {
		if ws.Slug == slug {
			c := *ws
			return &c, nil
		}
	}
	return nil, fmt.Errorf("workspace %s: %w", slug, domain.ErrNotFound)
}

func (r *workspaceRepository) List(_ context.Context) ([]docsystem.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	workspaces := make([]docsystem.Workspace, 0, len(r.s.workspaces))
	for _, ws := range r.s.workspaces {
		workspaces = append(workspaces, *ws)
	}
	sort.Slice(workspaces, func(i, j int) bool {
		return workspaces[i].Name < workspaces[j].Name
	})
	return workspaces, nil
}
