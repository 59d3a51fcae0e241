package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
	models "inkwell/internal/domain/models/docsystem"
	docsysRepo "inkwell/internal/domain/repositories/docsystem"
	"inkwell/internal/repository/postgres"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) docsysRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const documentColumns = `id, workspace_id, creator_id, current_version_number, created_at, updated_at`

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (workspace_id, creator_id, current_version_number)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.WorkspaceID,
		doc.CreatorID,
		doc.CurrentVersionNumber,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return postgres.TranslateError("create document", err)
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)
	return r.getOne(ctx, query, id)
}

// GetForUpdate retrieves a document and locks its row until the transaction ends
func (r *PostgresDocumentRepository) GetForUpdate(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, documentColumns, r.tables.Documents)
	return r.getOne(ctx, query, id)
}

func (r *PostgresDocumentRepository) getOne(ctx context.Context, query, id string) (*models.Document, error) {
	var doc models.Document
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.WorkspaceID,
		&doc.CreatorID,
		&doc.CurrentVersionNumber,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidIDError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.TranslateError("get document", err)
	}

	return &doc, nil
}

// Update persists the current version pointer and workspace
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET current_version_number = $1, workspace_id = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Documents)

	doc.UpdatedAt = time.Now().UTC()

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		doc.CurrentVersionNumber,
		doc.WorkspaceID,
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		return postgres.TranslateError("update document", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a document; child rows go with it through ON DELETE CASCADE
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.TranslateError("delete document", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	r.logger.Debug("document deleted", "document_id", id)
	return nil
}

// ListSummaries lists documents joined with their current version, newest first.
// The excerpt is the body with HTML tags stripped, cut to excerptLength characters.
func (r *PostgresDocumentRepository) ListSummaries(ctx context.Context, workspaceID *string, excerptLength int) ([]models.DocumentSummary, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.workspace_id, d.creator_id, d.current_version_number, d.created_at, d.updated_at,
		       v.title, left(regexp_replace(v.body, '<[^>]*>', '', 'g'), $1)
		FROM %s d
		JOIN %s v ON v.document_id = d.id AND v.version_number = d.current_version_number
		WHERE ($2::uuid IS NULL OR d.workspace_id = $2::uuid)
		ORDER BY d.created_at DESC
	`, r.tables.Documents, r.tables.Versions)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, excerptLength, workspaceID)
	if err != nil {
		return nil, postgres.TranslateError("list documents", err)
	}
	defer rows.Close()

	summaries := []models.DocumentSummary{}
	for rows.Next() {
		var s models.DocumentSummary
		if err := rows.Scan(
			&s.ID,
			&s.WorkspaceID,
			&s.CreatorID,
			&s.CurrentVersionNumber,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.Title,
			&s.Excerpt,
		); err != nil {
			return nil, fmt.Errorf("scan document summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document summaries: %w", err)
	}

	return summaries, nil
}
