package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	docmodels "inkwell/internal/domain/models/docsystem"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
	docsysSvc "inkwell/internal/domain/services/docsystem"
)

var (
	slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)
	slugFormat = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// maxSlugAttempts bounds the -N suffix search for a free slug
const maxSlugAttempts = 100

// workspaceService implements the WorkspaceService interface
type workspaceService struct {
	workspaceRepo docsysRepo.WorkspaceRepository
	logger        *slog.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(workspaceRepo docsysRepo.WorkspaceRepository, logger *slog.Logger) docsysSvc.WorkspaceService {
	return &workspaceService{workspaceRepo: workspaceRepo, logger: logger}
}

func (s *workspaceService) ListWorkspaces(ctx context.Context) ([]docmodels.Workspace, error) {
	return s.workspaceRepo.List(ctx)
}

// CreateWorkspace creates a workspace. Without an explicit slug one is
// derived from the name and suffixed -1, -2, ... until it is free.
func (s *workspaceService) CreateWorkspace(ctx context.Context, req *docsysSvc.CreateWorkspaceRequest) (*docmodels.Workspace, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)

	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.RuneLength(1, config.MaxWorkspaceNameLength),
		),
		validation.Field(&req.Slug,
			validation.Match(slugFormat).Error("slug must be lowercase letters, digits and single dashes"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	slug := req.Slug
	if slug == "" {
		base := ToSlug(req.Name)
		if base == "" {
			return nil, fmt.Errorf("%w: name must contain letters or digits", domain.ErrValidation)
		}
		slug, err = s.freeSlug(ctx, base)
		if err != nil {
			return nil, err
		}
	}

	ws := &docmodels.Workspace{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
	}
	if err := s.workspaceRepo.Create(ctx, ws); err != nil {
		return nil, err
	}

	s.logger.Info("workspace created", "workspace_id", ws.ID, "slug", ws.Slug)
	return ws, nil
}

func (s *workspaceService) freeSlug(ctx context.Context, base string) (string, error) {
	candidate := base
	for n := 1; n <= maxSlugAttempts; n++ {
		_, err := s.workspaceRepo.GetBySlug(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return "", &domain.ConflictError{
		Message:      fmt.Sprintf("no free slug for '%s'", base),
		ResourceType: "workspace",
	}
}

// ToSlug lowercases s and joins its letter/digit runs with dashes
func ToSlug(s string) string {
	return strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
