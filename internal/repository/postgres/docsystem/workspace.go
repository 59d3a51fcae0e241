package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	models "inkwell/internal/domain/models/docsystem"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
	"inkwell/internal/repository/postgres"
)

// PostgresWorkspaceRepository implements the WorkspaceRepository interface
type PostgresWorkspaceRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(config *postgres.RepositoryConfig) docsysRepo.WorkspaceRepository {
	return &PostgresWorkspaceRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new workspace
func (r *PostgresWorkspaceRepository) Create(ctx context.Context, ws *models.Workspace) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Workspaces)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, ws.Name, ws.Slug, ws.Description).
		Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("workspace slug '%s' already exists", ws.Slug),
				ResourceType: "workspace",
			}
		}
		return postgres.TranslateError("create workspace", err)
	}

	return nil
}

// GetByID retrieves a workspace by ID
func (r *PostgresWorkspaceRepository) GetByID(ctx context.Context, id string) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, description, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Workspaces)
	return r.getOne(ctx, query, id)
}

// GetBySlug retrieves a workspace by slug
func (r *PostgresWorkspaceRepository) GetBySlug(ctx context.Context, slug string) (*models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, description, created_at, updated_at
		FROM %s
		WHERE slug = $1
	`, r.tables.Workspaces)
	return r.getOne(ctx, query, slug)
}

func (r *PostgresWorkspaceRepository) getOne(ctx context.Context, query, key string) (*models.Workspace, error) {
	var ws models.Workspace
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, key).Scan(
		&ws.ID,
		&ws.Name,
		&ws.Slug,
		&ws.Description,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidIDError(err) {
			return nil, fmt.Errorf("workspace %s: %w", key, domain.ErrNotFound)
		}
		return nil, postgres.TranslateError("get workspace", err)
	}
	return &ws, nil
}

// List lists all workspaces by name
func (r *PostgresWorkspaceRepository) List(ctx context.Context) ([]models.Workspace, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug, description, created_at, updated_at
		FROM %s
		ORDER BY name ASC
	`, r.tables.Workspaces)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, postgres.TranslateError("list workspaces", err)
	}
	defer rows.Close()

	workspaces := []models.Workspace{}
	for rows.Next() {
		var ws models.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Slug, &ws.Description, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workspaces: %w", err)
	}

	return workspaces, nil
}
