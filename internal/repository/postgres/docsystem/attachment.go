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

// PostgresAttachmentRepository implements the AttachmentRepository interface
type PostgresAttachmentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(config *postgres.RepositoryConfig) docsysRepo.AttachmentRepository {
	return &PostgresAttachmentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts an attachment including its payload.
// The composite foreign key rejects a version that belongs to another document.
func (r *PostgresAttachmentRepository) Create(ctx context.Context, a *models.Attachment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, version_id, filename, mime_type, size, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, r.tables.Attachments)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		a.DocumentID,
		a.VersionID,
		a.Filename,
		a.MimeType,
		a.Size,
		a.Data,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return postgres.TranslateError("create attachment", err)
	}

	return nil
}

// GetForDocument retrieves an attachment with its payload, scoped to a document
func (r *PostgresAttachmentRepository) GetForDocument(ctx context.Context, documentID, id string) (*models.Attachment, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, version_id, filename, mime_type, size, data, created_at
		FROM %s
		WHERE id = $1 AND document_id = $2
	`, r.tables.Attachments)

	var a models.Attachment
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, documentID).Scan(
		&a.ID,
		&a.DocumentID,
		&a.VersionID,
		&a.Filename,
		&a.MimeType,
		&a.Size,
		&a.Data,
		&a.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidIDError(err) {
			return nil, fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.TranslateError("get attachment", err)
	}

	return &a, nil
}

// ListByVersion lists attachment metadata bound to a version, oldest first
func (r *PostgresAttachmentRepository) ListByVersion(ctx context.Context, versionID string) ([]models.Attachment, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, version_id, filename, mime_type, size, created_at
		FROM %s
		WHERE version_id = $1
		ORDER BY created_at ASC
	`, r.tables.Attachments)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, versionID)
	if err != nil {
		return nil, postgres.TranslateError("list attachments", err)
	}
	defer rows.Close()

	attachments := []models.Attachment{}
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.DocumentID, &a.VersionID, &a.Filename, &a.MimeType, &a.Size, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attachments: %w", err)
	}

	return attachments, nil
}

// Delete removes an attachment scoped to a document
func (r *PostgresAttachmentRepository) Delete(ctx context.Context, documentID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND document_id = $2`, r.tables.Attachments)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, documentID)
	if err != nil {
		return postgres.TranslateError("delete attachment", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("attachment %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
