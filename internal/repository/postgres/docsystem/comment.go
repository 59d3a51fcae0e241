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

// PostgresCommentRepository implements the CommentRepository interface
type PostgresCommentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(config *postgres.RepositoryConfig) docsysRepo.CommentRepository {
	return &PostgresCommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a comment
func (r *PostgresCommentRepository) Create(ctx context.Context, c *models.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, workspace_id, author_id, author, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Comments)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		c.DocumentID,
		c.WorkspaceID,
		c.AuthorID,
		c.Author,
		c.Body,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return postgres.TranslateError("create comment", err)
	}

	return nil
}

// GetForDocument retrieves a comment scoped to a document
func (r *PostgresCommentRepository) GetForDocument(ctx context.Context, documentID, id string) (*models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, workspace_id, author_id, author, body, created_at, updated_at
		FROM %s
		WHERE id = $1 AND document_id = $2
	`, r.tables.Comments)

	var c models.Comment
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, documentID).Scan(
		&c.ID,
		&c.DocumentID,
		&c.WorkspaceID,
		&c.AuthorID,
		&c.Author,
		&c.Body,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidIDError(err) {
			return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.TranslateError("get comment", err)
	}

	return &c, nil
}

// Update persists a comment's body
func (r *PostgresCommentRepository) Update(ctx context.Context, c *models.Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET body = $1, updated_at = $2
		WHERE id = $3 AND document_id = $4
	`, r.tables.Comments)

	c.UpdatedAt = time.Now().UTC()

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, c.Body, c.UpdatedAt, c.ID, c.DocumentID)
	if err != nil {
		return postgres.TranslateError("update comment", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", c.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a comment scoped to a document
func (r *PostgresCommentRepository) Delete(ctx context.Context, documentID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND document_id = $2`, r.tables.Comments)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, documentID)
	if err != nil {
		return postgres.TranslateError("delete comment", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByDocument lists a document's comments, newest first
func (r *PostgresCommentRepository) ListByDocument(ctx context.Context, documentID string) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, workspace_id, author_id, author, body, created_at, updated_at
		FROM %s
		WHERE document_id = $1
		ORDER BY created_at DESC
	`, r.tables.Comments)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, postgres.TranslateError("list comments", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.WorkspaceID, &c.AuthorID, &c.Author, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}
